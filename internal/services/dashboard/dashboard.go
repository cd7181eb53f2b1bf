// Package dashboard собирает сводку «сегодня» для главного экрана:
// меню дня, количество тарелок, активные клиенты и должники.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/tiffin-admin/internal/lib/week"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/forecast"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/menu"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/subscription"
)

// ForecastService считает тарелки на дату.
type ForecastService interface {
	CountToday(ctx context.Context, today time.Time) (forecast.DayCount, error)
}

// MenuService загружает меню недели.
type MenuService interface {
	GetWeek(ctx context.Context, weekID string) (menu.WeekMenu, error)
}

// CustomerService возвращает клиентов с производными величинами.
type CustomerService interface {
	List(ctx context.Context) ([]subscription.CustomerView, error)
}

// Today сводка главного экрана на текущий день.
type Today struct {
	Date            string            `json:"date"`
	Day             week.DayName      `json:"day"`
	Menu            models.DayMenu    `json:"menu"`
	Counts          forecast.DayCount `json:"counts"`
	ActiveCustomers int               `json:"active_customers"`
	PaymentsDue     int               `json:"payments_due"`
}

// Service собирает сводку из сервисов меню, прогноза и клиентов.
type Service struct {
	forecast  ForecastService
	menu      MenuService
	customers CustomerService
	log       *slog.Logger
}

// New создает новый Service.
func New(forecastSvc ForecastService, menuSvc MenuService, customersSvc CustomerService, log *slog.Logger) *Service {
	return &Service{forecast: forecastSvc, menu: menuSvc, customers: customersSvc, log: log}
}

// Today возвращает сводку на указанную дату. Должники считаются среди
// неистёкших подписок: клиент с задолженностью и просроченной подпиской
// уже виден в списке как expired.
func (s *Service) Today(ctx context.Context, now time.Time) (*Today, error) {
	weekID := week.WeekID(now)
	dayName := week.DayNameFor(now)

	weekMenu, err := s.menu.GetWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}
	counts, err := s.forecast.CountToday(ctx, now)
	if err != nil {
		return nil, err
	}
	views, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &Today{
		Date:   week.FormatISO(now),
		Day:    dayName,
		Menu:   weekMenu[dayName],
		Counts: counts,
	}
	for _, v := range views {
		if !v.IsActive {
			continue
		}
		result.ActiveCustomers++
		if v.Status != subscription.StatusExpired && v.DueAmount > 0 {
			result.PaymentsDue++
		}
	}
	return result, nil
}
