// Package memstore реализует хранилище в памяти с теми же методами,
// что и у PostgreSQL-репозитория. Используется тестами и автономными
// запусками без базы данных.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/magabrotheeeer/tiffin-admin/internal/lib/week"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// Store потокобезопасное хранилище в памяти.
// Подписчики уведомляются после каждой записи.
type Store struct {
	mu          sync.RWMutex
	customers   map[string]models.Customer
	overrides   map[string]models.AttendanceOverride // ключ "дата_клиент"
	menus       map[string]models.RawDayMenu         // ключ — дата ISO
	payments    map[string]models.PaymentRecord
	subscribers map[int]func()
	nextSubID   int
}

// New создает пустое хранилище.
func New() *Store {
	return &Store{
		customers:   make(map[string]models.Customer),
		overrides:   make(map[string]models.AttendanceOverride),
		menus:       make(map[string]models.RawDayMenu),
		payments:    make(map[string]models.PaymentRecord),
		subscribers: make(map[int]func()),
	}
}

// Subscribe регистрирует обработчик, вызываемый после каждой записи.
// Возвращённая функция снимает подписку.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// notify вызывается с удержанным мьютексом записи.
func (s *Store) notify() {
	for _, fn := range s.subscribers {
		fn()
	}
}

func overrideKey(date time.Time, customerID string) string {
	return week.FormatISO(date) + "_" + customerID
}

// CreateCustomer добавляет нового клиента.
func (s *Store) CreateCustomer(_ context.Context, customer models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.ID]; ok {
		return fmt.Errorf("memstore: customer %s already exists", customer.ID)
	}
	s.customers[customer.ID] = customer
	s.notify()
	return nil
}

// ReadCustomer возвращает клиента по ID, nil если его нет.
func (s *Store) ReadCustomer(_ context.Context, id string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// UpdateCustomer обновляет данные клиента и возвращает число изменённых записей.
func (s *Store) UpdateCustomer(_ context.Context, customer models.Customer) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.ID]; !ok {
		return 0, nil
	}
	s.customers[customer.ID] = customer
	s.notify()
	return 1, nil
}

// RemoveCustomer удаляет клиента. Записи журнала платежей не трогаются.
func (s *Store) RemoveCustomer(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[id]; !ok {
		return 0, nil
	}
	delete(s.customers, id)
	s.notify()
	return 1, nil
}

// ListCustomers возвращает всех клиентов, отсортированных по имени.
func (s *Store) ListCustomers(_ context.Context) ([]*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		c := c
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// FindCustomersExpiringSoon возвращает активных клиентов, у которых
// подписка заканчивается в ближайшие within дней, включая сегодня.
func (s *Store) FindCustomersExpiringSoon(_ context.Context, within int) ([]*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	limit := today.AddDate(0, 0, within)

	var result []*models.Customer
	for _, c := range s.customers {
		if !c.IsActive || c.EndDate.Before(today) || c.EndDate.After(limit) {
			continue
		}
		c := c
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EndDate.Before(result[j].EndDate) })
	return result, nil
}

// ReadOverride возвращает отметку по паре (дата, клиент), nil если её нет.
func (s *Store) ReadOverride(_ context.Context, date time.Time, customerID string) (*models.AttendanceOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.overrides[overrideKey(date, customerID)]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// UpsertOverride создаёт или перезаписывает отметку целиком.
func (s *Store) UpsertOverride(_ context.Context, override models.AttendanceOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[overrideKey(override.Date, override.CustomerID)] = override
	s.notify()
	return nil
}

// ListOverridesByDate возвращает отметки на дату, ключ — ID клиента.
func (s *Store) ListOverridesByDate(_ context.Context, date time.Time) (map[string]*models.AttendanceOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	iso := week.FormatISO(date)
	result := make(map[string]*models.AttendanceOverride)
	for _, o := range s.overrides {
		if week.FormatISO(o.Date) != iso {
			continue
		}
		o := o
		result[o.CustomerID] = &o
	}
	return result, nil
}

// ListOverridesByDates возвращает отметки по нескольким датам,
// сгруппированные по дате в формате ISO.
func (s *Store) ListOverridesByDates(_ context.Context, dates []time.Time) (map[string]map[string]*models.AttendanceOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		wanted[week.FormatISO(d)] = struct{}{}
	}

	result := make(map[string]map[string]*models.AttendanceOverride)
	for _, o := range s.overrides {
		iso := week.FormatISO(o.Date)
		if _, ok := wanted[iso]; !ok {
			continue
		}
		if result[iso] == nil {
			result[iso] = make(map[string]*models.AttendanceOverride)
		}
		o := o
		result[iso][o.CustomerID] = &o
	}
	return result, nil
}

// ReadDayMenu возвращает сырой документ меню на дату, nil если его нет.
func (s *Store) ReadDayMenu(_ context.Context, date time.Time) (*models.RawDayMenu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.menus[week.FormatISO(date)]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// SaveDayMenu сохраняет меню дня целиком.
func (s *Store) SaveDayMenu(_ context.Context, date time.Time, menu models.DayMenu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lunch := rawSlot(menu.Lunch)
	dinner := rawSlot(menu.Dinner)
	s.menus[week.FormatISO(date)] = models.RawDayMenu{Lunch: lunch, Dinner: dinner}
	s.notify()
	return nil
}

// SaveRawDayMenu сохраняет документ меню как есть, без нормализации.
// Нужен тестам для имитации записей старых форматов.
func (s *Store) SaveRawDayMenu(date time.Time, raw models.RawDayMenu) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[week.FormatISO(date)] = raw
	s.notify()
}

// RecordPayment атомарно сохраняет запись платежа и обновлённого клиента.
func (s *Store) RecordPayment(_ context.Context, record models.PaymentRecord, customer models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.ID]; !ok {
		return fmt.Errorf("memstore: customer %s not found", customer.ID)
	}
	s.payments[record.ID] = record
	s.customers[customer.ID] = customer
	s.notify()
	return nil
}

// ListPaymentsByMonth возвращает записи месяца, новые сверху.
func (s *Store) ListPaymentsByMonth(_ context.Context, monthTag string) ([]*models.PaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.PaymentRecord
	for _, r := range s.payments {
		if r.MonthTag != monthTag {
			continue
		}
		r := r
		result = append(result, &r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

// RemovePayment удаляет запись журнала.
func (s *Store) RemovePayment(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[id]; !ok {
		return 0, nil
	}
	delete(s.payments, id)
	s.notify()
	return 1, nil
}

func rawSlot(slot models.MealSlot) *models.RawMealSlot {
	main := slot.Main
	roti := slot.Roti
	extra := slot.Extra
	rice := fmt.Sprintf(`{"enabled":%t,"type":%q}`, slot.Rice.Enabled, slot.Rice.Type)
	return &models.RawMealSlot{
		Main:  &main,
		Roti:  &roti,
		Rice:  []byte(rice),
		Extra: &extra,
	}
}
