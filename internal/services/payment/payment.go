// Package payment ведёт журнал платежей и финансовую сводку месяца.
// Запись платежа одновременно продлевает оплаченный период клиента;
// сами записи неизменяемы и переживают удаление клиента.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/tiffin-admin/internal/models"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/subscription"
)

// PaymentRepository определяет методы хранилища журнала платежей.
type PaymentRepository interface {
	// RecordPayment атомарно сохраняет запись платежа и обновлённого
	// клиента: либо обе записи, либо ни одной.
	RecordPayment(ctx context.Context, record models.PaymentRecord, customer models.Customer) error
	// ListPaymentsByMonth возвращает записи месяца по метке "YYYY-MM".
	ListPaymentsByMonth(ctx context.Context, monthTag string) ([]*models.PaymentRecord, error)
	// RemovePayment удаляет запись и возвращает число удалённых записей.
	RemovePayment(ctx context.Context, id string) (int, error)
}

// CustomerRepository определяет методы хранилища для чтения клиентов.
type CustomerRepository interface {
	ReadCustomer(ctx context.Context, id string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
}

// MonthSummary финансовая сводка месяца для экрана журнала.
type MonthSummary struct {
	Collected   int `json:"collected"`    // Собрано за месяц, без сиротских записей
	Expected    int `json:"expected"`     // Сумма месячных цен активных клиентов
	Outstanding int `json:"outstanding"`  // Сумма задолженностей активных клиентов
	ActiveCount int `json:"active_count"` // Число активных клиентов
	OrphanCount int `json:"orphan_count"` // Число сиротских записей в месяце
}

// MonthLedger журнал месяца вместе со сводкой.
type MonthLedger struct {
	Entries []models.LedgerEntry `json:"entries"`
	Summary MonthSummary         `json:"summary"`
}

// LedgerFor помечает сиротские записи и считает собранное за месяц.
// Сиротская запись остаётся видимой в журнале, но в сумму собранного
// не входит.
func LedgerFor(records []*models.PaymentRecord, existing map[string]struct{}) ([]models.LedgerEntry, int, int) {
	entries := make([]models.LedgerEntry, 0, len(records))
	var collected, orphans int
	for _, r := range records {
		_, ok := existing[r.CustomerID]
		if ok {
			collected += r.Amount
		} else {
			orphans++
		}
		entries = append(entries, models.LedgerEntry{PaymentRecord: *r, IsOrphan: !ok})
	}
	return entries, collected, orphans
}

// ExtendEndDate возвращает новую границу оплаченного периода после
// платежа: 30 дней от текущей границы, а для уже истёкшей подписки —
// от сегодняшнего дня. Разрыв после истечения не тарифицируется.
func ExtendEndDate(endDate, today time.Time) time.Time {
	base := endDate
	if today.After(endDate) {
		base = today
	}
	return base.AddDate(0, 0, 30)
}

// Service операции над журналом платежей.
type Service struct {
	payments  PaymentRepository
	customers CustomerRepository
	log       *slog.Logger
}

// New создает новый Service.
func New(payments PaymentRepository, customers CustomerRepository, log *slog.Logger) *Service {
	return &Service{payments: payments, customers: customers, log: log}
}

// Record принимает платёж: создаёт запись журнала и продлевает
// оплаченный период клиента на 30 дней. Нулевая сумма в запросе
// означает месячную цену клиента.
func (s *Service) Record(ctx context.Context, req models.DummyPayment) (*models.PaymentRecord, error) {
	const op = "services.payment.Record"

	customer, err := s.customers.ReadCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%s: customer not found", op)
	}

	amount := req.Amount
	if amount == 0 {
		amount = customer.PricePerMonth
	}

	now := time.Now().UTC()
	record := models.PaymentRecord{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Amount:       amount,
		Date:         now,
		Method:       req.Method,
		MonthTag:     models.MonthTagFor(now),
	}

	updated := *customer
	updated.TotalPaid += amount
	updated.EndDate = ExtendEndDate(customer.EndDate, now)

	if err := s.payments.RecordPayment(ctx, record, updated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("recorded payment",
		slog.String("customer_id", customer.ID),
		slog.Int("amount", amount),
		slog.String("month_tag", record.MonthTag))
	return &record, nil
}

// ListMonth возвращает журнал месяца со сводкой. Метка месяца по
// умолчанию — текущий месяц.
func (s *Service) ListMonth(ctx context.Context, monthTag string) (*MonthLedger, error) {
	const op = "services.payment.ListMonth"

	if monthTag == "" {
		monthTag = models.MonthTagFor(time.Now().UTC())
	}
	records, err := s.payments.ListPaymentsByMonth(ctx, monthTag)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	existing := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		existing[c.ID] = struct{}{}
	}
	entries, collected, orphans := LedgerFor(records, existing)

	summary := MonthSummary{
		Collected:   collected,
		OrphanCount: orphans,
	}
	for _, c := range customers {
		if !c.IsActive {
			continue
		}
		summary.ActiveCount++
		summary.Expected += c.PricePerMonth
		summary.Outstanding += subscription.DueAmount(c.PricePerMonth, c.TotalPaid)
	}
	return &MonthLedger{Entries: entries, Summary: summary}, nil
}

// Remove удаляет запись журнала. Оплаченный период клиента при этом
// не откатывается: удаление исправляет журнал, а не отменяет платёж.
func (s *Service) Remove(ctx context.Context, id string) (int, error) {
	const op = "services.payment.Remove"

	count, err := s.payments.RemovePayment(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("removed payment record", slog.String("id", id), slog.Int("count", count))
	return count, nil
}
