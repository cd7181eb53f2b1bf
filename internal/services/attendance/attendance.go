// Package attendance реализует правило учёта посещаемости.
//
// Правило двухуровневое и должно сохраняться точно:
// на уровне плана клиент участвует в приёме пищи, если флаг подписки
// не равен явному false (отсутствие флага означает «подписан»);
// на уровне дня подписанный клиент считается присутствующим, пока
// явная отметка на эту дату не скажет обратное. Клиент без подписки
// на ужин не попадает в ужин ни при какой отметке.
package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/tiffin-admin/internal/lib/week"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/subscription"
)

// Subscribed сообщает, участвует ли клиент в приёме пищи на уровне плана.
// Только явный false исключает.
func Subscribed(customer models.Customer, meal models.Meal) bool {
	var flag *bool
	if meal == models.MealDinner {
		flag = customer.MealsPerDay.Dinner
	} else {
		flag = customer.MealsPerDay.Lunch
	}
	return flag == nil || *flag
}

// IsAttending сообщает, считается ли клиент на приём пищи в день отметки.
// Отметка может быть nil — тогда подписанный клиент присутствует.
// Отсутствующее поле на существующей отметке тоже означает «присутствует».
func IsAttending(customer models.Customer, override *models.AttendanceOverride, meal models.Meal) bool {
	if !Subscribed(customer, meal) {
		return false
	}
	value := override.MealValue(meal)
	return value == nil || *value
}

// OverrideRepository определяет методы хранилища для отметок посещаемости.
type OverrideRepository interface {
	// ReadOverride возвращает отметку по паре (дата, клиент), nil если её нет.
	ReadOverride(ctx context.Context, date time.Time, customerID string) (*models.AttendanceOverride, error)
	// UpsertOverride создаёт или перезаписывает отметку.
	UpsertOverride(ctx context.Context, override models.AttendanceOverride) error
	// ListOverridesByDate возвращает отметки на дату, ключ — ID клиента.
	ListOverridesByDate(ctx context.Context, date time.Time) (map[string]*models.AttendanceOverride, error)
}

// CustomerRepository определяет методы хранилища для чтения клиентов.
type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
}

// Service управляет отметками посещаемости.
type Service struct {
	overrides OverrideRepository
	customers CustomerRepository
	log       *slog.Logger
}

// New создает новый Service.
func New(overrides OverrideRepository, customers CustomerRepository, log *slog.Logger) *Service {
	return &Service{overrides: overrides, customers: customers, log: log}
}

// Toggle переключает отметку приёма пищи клиента на дату и возвращает
// новое значение. Запись создаётся только здесь — по явному действию
// пользователя.
func (s *Service) Toggle(ctx context.Context, req models.DummyToggle) (bool, error) {
	date, err := time.Parse(week.ISODate, req.Date)
	if err != nil {
		return false, fmt.Errorf("invalid date: %w", err)
	}
	meal := models.Meal(req.Meal)

	current, err := s.overrides.ReadOverride(ctx, date, req.CustomerID)
	if err != nil {
		return false, err
	}

	// Текущее состояние по умолчанию — присутствует на обоих приёмах.
	lunch, dinner := true, true
	if current != nil {
		if current.Lunch != nil {
			lunch = *current.Lunch
		}
		if current.Dinner != nil {
			dinner = *current.Dinner
		}
	}

	var newValue bool
	if meal == models.MealDinner {
		dinner = !dinner
		newValue = dinner
	} else {
		lunch = !lunch
		newValue = lunch
	}

	override := models.AttendanceOverride{
		Date:       date,
		CustomerID: req.CustomerID,
		Lunch:      &lunch,
		Dinner:     &dinner,
		UpdatedAt:  time.Now(),
	}
	if err := s.overrides.UpsertOverride(ctx, override); err != nil {
		return false, err
	}

	s.log.Info("attendance toggled",
		slog.String("customer_id", req.CustomerID),
		slog.String("date", req.Date),
		slog.String("meal", req.Meal),
		slog.Bool("attending", newValue))
	return newValue, nil
}

// CustomerDay посещаемость одного клиента на дату для экрана отметок.
type CustomerDay struct {
	Customer         models.Customer `json:"customer"`
	SubscribedLunch  bool            `json:"subscribed_lunch"`
	SubscribedDinner bool            `json:"subscribed_dinner"`
	Lunch            bool            `json:"lunch"`
	Dinner           bool            `json:"dinner"`
}

// ListForDate возвращает активных клиентов с разрешённым состоянием
// посещаемости на дату. Клиенты с истёкшей подпиской не показываются.
func (s *Service) ListForDate(ctx context.Context, date time.Time) ([]CustomerDay, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.overrides.ListOverridesByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	result := make([]CustomerDay, 0, len(customers))
	for _, c := range customers {
		if !c.IsActive || subscription.DaysLeft(c.EndDate, date) < 0 {
			continue
		}
		ov := overrides[c.ID]
		result = append(result, CustomerDay{
			Customer:         *c,
			SubscribedLunch:  Subscribed(*c, models.MealLunch),
			SubscribedDinner: Subscribed(*c, models.MealDinner),
			Lunch:            IsAttending(*c, ov, models.MealLunch),
			Dinner:           IsAttending(*c, ov, models.MealDinner),
		})
	}
	return result, nil
}
