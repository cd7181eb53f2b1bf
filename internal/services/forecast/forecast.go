// Package forecast агрегирует посещаемость по активным клиентам
// в количество тарелок: на сегодня и на каждый день недели.
// Счётчики — тарелки, а не клиенты: клиент на обоих приёмах пищи
// входит в оба счётчика независимо.
package forecast

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/tiffin-admin/internal/lib/week"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/attendance"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/subscription"
)

// DayCount количество тарелок на один день.
type DayCount struct {
	Lunch  int `json:"lunch"`
	Dinner int `json:"dinner"`
}

// DayForecast прогноз производства на день недели.
type DayForecast struct {
	Lunch  int `json:"lunch"`
	Dinner int `json:"dinner"`
	Total  int `json:"total"`
}

// CountForDay считает тарелки на дату по списку клиентов и отметкам
// этой даты. Учитываются только клиенты с неистёкшей подпиской
// (остаток дней ≥ 0) и ручным флагом активности.
func CountForDay(customers []*models.Customer, overrides map[string]*models.AttendanceOverride, date time.Time) DayCount {
	var count DayCount
	for _, c := range customers {
		if !c.IsActive || subscription.DaysLeft(c.EndDate, date) < 0 {
			continue
		}
		ov := overrides[c.ID]
		if attendance.IsAttending(*c, ov, models.MealLunch) {
			count.Lunch++
		}
		if attendance.IsAttending(*c, ov, models.MealDinner) {
			count.Dinner++
		}
	}
	return count
}

// CustomersForMeal возвращает клиентов, стоящих за счётчиком:
// кто именно входит в «сегодняшний обед». Тот же фильтр и то же
// правило разрешения, что и у CountForDay.
func CustomersForMeal(customers []*models.Customer, overrides map[string]*models.AttendanceOverride, date time.Time, meal models.Meal) []*models.Customer {
	var result []*models.Customer
	for _, c := range customers {
		if !c.IsActive || subscription.DaysLeft(c.EndDate, date) < 0 {
			continue
		}
		if attendance.IsAttending(*c, overrides[c.ID], meal) {
			result = append(result, c)
		}
	}
	return result
}

// CustomerRepository определяет методы хранилища для чтения клиентов.
type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
}

// OverrideRepository определяет методы хранилища для чтения отметок.
type OverrideRepository interface {
	ListOverridesByDate(ctx context.Context, date time.Time) (map[string]*models.AttendanceOverride, error)
	// ListOverridesByDates возвращает отметки по нескольким датам,
	// сгруппированные по дате в формате ISO.
	ListOverridesByDates(ctx context.Context, dates []time.Time) (map[string]map[string]*models.AttendanceOverride, error)
}

// Service считает прогноз производства по данным хранилища.
type Service struct {
	customers CustomerRepository
	overrides OverrideRepository
	log       *slog.Logger
}

// New создает новый Service.
func New(customers CustomerRepository, overrides OverrideRepository, log *slog.Logger) *Service {
	return &Service{customers: customers, overrides: overrides, log: log}
}

// CountToday возвращает количество тарелок на сегодня.
func (s *Service) CountToday(ctx context.Context, today time.Time) (DayCount, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return DayCount{}, err
	}
	overrides, err := s.overrides.ListOverridesByDate(ctx, today)
	if err != nil {
		return DayCount{}, err
	}
	return CountForDay(customers, overrides, today), nil
}

// ForecastWeek возвращает прогноз на каждый день недели для
// аннотаций спроса на экране недельного меню.
func (s *Service) ForecastWeek(ctx context.Context, weekID string) (map[week.DayName]DayForecast, error) {
	dates, err := week.DatesForWeek(weekID)
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	overridesByDate, err := s.overrides.ListOverridesByDates(ctx, dates[:])
	if err != nil {
		return nil, err
	}

	result := make(map[week.DayName]DayForecast, len(week.Days))
	for i, day := range week.Days {
		date := dates[i]
		count := CountForDay(customers, overridesByDate[week.FormatISO(date)], date)
		result[day] = DayForecast{
			Lunch:  count.Lunch,
			Dinner: count.Dinner,
			Total:  count.Lunch + count.Dinner,
		}
	}
	return result, nil
}

// MealCustomers возвращает список клиентов за счётчиком указанного
// приёма пищи на дату — для развёрнутых экранов.
func (s *Service) MealCustomers(ctx context.Context, date time.Time, meal models.Meal) ([]*models.Customer, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.overrides.ListOverridesByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return CustomersForMeal(customers, overrides, date, meal), nil
}
