// Package subscription содержит бизнес-логику жизненного цикла клиентов:
// вычисление остатка дней, статуса и задолженности, а также операции
// управления клиентами с кешированием.
//
// Производные величины нигде не хранятся — они пересчитываются от
// даты окончания и текущей даты при каждом обращении.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// Status статус подписки клиента, производный от даты окончания.
type Status string

// Статусы подписки. Граница: ровно 3 оставшихся дня — это ещё
// StatusExpiringSoon, ровно 4 — уже StatusActive.
const (
	StatusActive       Status = "active"
	StatusExpiringSoon Status = "expiring-soon"
	StatusExpired      Status = "expired"
)

// DaysLeft возвращает число дней до даты окончания. Обе даты усекаются
// до полуночи, поэтому «сегодня же» даёт 0, а не дробь; прошедшая дата
// даёт отрицательное значение.
func DaysLeft(endDate, today time.Time) int {
	end := midnight(endDate)
	now := midnight(today)
	diff := end.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// StatusFor возвращает статус подписки на указанную дату.
func StatusFor(endDate, today time.Time) Status {
	daysLeft := DaysLeft(endDate, today)
	switch {
	case daysLeft < 0:
		return StatusExpired
	case daysLeft <= 3:
		return StatusExpiringSoon
	default:
		return StatusActive
	}
}

// DueAmount возвращает задолженность клиента: цена за месяц минус
// всё оплаченное, не ниже нуля. Переплата для этой функции невидима.
func DueAmount(pricePerMonth, totalPaid int) int {
	due := pricePerMonth - totalPaid
	if due < 0 {
		return 0
	}
	return due
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CustomerRepository определяет методы хранилища для работы с клиентами.
type CustomerRepository interface {
	// CreateCustomer добавляет нового клиента.
	CreateCustomer(ctx context.Context, customer models.Customer) error
	// ReadCustomer возвращает клиента по ID.
	ReadCustomer(ctx context.Context, id string) (*models.Customer, error)
	// UpdateCustomer обновляет данные клиента и возвращает число изменённых записей.
	UpdateCustomer(ctx context.Context, customer models.Customer) (int, error)
	// RemoveCustomer физически удаляет клиента и возвращает число удалённых записей.
	RemoveCustomer(ctx context.Context, id string) (int, error)
	// ListCustomers возвращает всех клиентов.
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CustomerView клиент вместе с производными величинами для списков.
type CustomerView struct {
	models.Customer
	DaysLeft  int    `json:"days_left"`
	Status    Status `json:"status"`
	DueAmount int    `json:"due_amount"`
}

// Service реализует операции управления клиентами.
type Service struct {
	repo  CustomerRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый Service.
func New(repo CustomerRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// Create создаёт нового клиента и возвращает его ID.
// Дата начала по умолчанию — сегодня; первый оплачиваемый период
// в 30 дней открывается сразу при создании.
func (s *Service) Create(ctx context.Context, req models.DummyCustomer) (string, error) {
	startDate := midnight(time.Now())
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return "", fmt.Errorf("invalid start date: %w", err)
		}
		startDate = parsed
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	customer := models.Customer{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Phone:         req.Phone,
		MealsPerDay:   models.MealsPerDay{Lunch: req.Lunch, Dinner: req.Dinner},
		PricePerMonth: req.PricePerMonth,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, 0, 30),
		TotalPaid:     0,
		Notes:         req.Notes,
		IsActive:      isActive,
	}

	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return "", err
	}
	s.log.Info("created new customer", slog.String("id", customer.ID))

	cacheKey := fmt.Sprintf("customer:%s", customer.ID)
	if err := s.cache.Set(cacheKey, customer, time.Hour); err != nil {
		s.log.Warn("failed to cache customer", slog.String("key", cacheKey), sl.Err(err))
	}

	return customer.ID, nil
}

// Read возвращает клиента по ID, используя кеш или репозиторий.
func (s *Service) Read(ctx context.Context, id string) (*models.Customer, error) {
	var result *models.Customer
	cacheKey := fmt.Sprintf("customer:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return result, nil
}

// Update обновляет данные клиента по ID.
func (s *Service) Update(ctx context.Context, id string, req models.DummyCustomer) (int, error) {
	current, err := s.repo.ReadCustomer(ctx, id)
	if err != nil {
		return 0, err
	}

	customer := *current
	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.MealsPerDay = models.MealsPerDay{Lunch: req.Lunch, Dinner: req.Dinner}
	customer.PricePerMonth = req.PricePerMonth
	customer.Notes = req.Notes
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return 0, fmt.Errorf("invalid start date: %w", err)
		}
		customer.StartDate = parsed
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	count, err := s.repo.UpdateCustomer(ctx, customer)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated customer in storage", slog.String("id", id))

	cacheKey := fmt.Sprintf("customer:%s", id)
	if err := s.cache.Set(cacheKey, customer, time.Hour); err != nil {
		s.log.Warn("failed to cache customer", slog.String("key", cacheKey), sl.Err(err))
	}
	return count, nil
}

// Deactivate снимает ручной флаг активности, не трогая даты подписки.
// Обычный путь «удаления» клиента.
func (s *Service) Deactivate(ctx context.Context, id string) (int, error) {
	current, err := s.repo.ReadCustomer(ctx, id)
	if err != nil {
		return 0, err
	}
	customer := *current
	customer.IsActive = false

	count, err := s.repo.UpdateCustomer(ctx, customer)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("customer:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return count, nil
}

// Remove физически удаляет клиента. Записи журнала платежей при этом
// не трогаются — они становятся сиротами и помечаются при показе.
func (s *Service) Remove(ctx context.Context, id string) (int, error) {
	cacheKey := fmt.Sprintf("customer:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}

	count, err := s.repo.RemoveCustomer(ctx, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// List возвращает всех клиентов с пересчитанными производными величинами.
func (s *Service) List(ctx context.Context) ([]CustomerView, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	views := make([]CustomerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, CustomerView{
			Customer:  *c,
			DaysLeft:  DaysLeft(c.EndDate, today),
			Status:    StatusFor(c.EndDate, today),
			DueAmount: DueAmount(c.PricePerMonth, c.TotalPaid),
		})
	}
	return views, nil
}
