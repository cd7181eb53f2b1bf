package payment

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

type PaymentsMock struct{ mock.Mock }

func (m *PaymentsMock) RecordPayment(ctx context.Context, record models.PaymentRecord, customer models.Customer) error {
	args := m.Called(ctx, record, customer)
	return args.Error(0)
}

func (m *PaymentsMock) ListPaymentsByMonth(ctx context.Context, monthTag string) ([]*models.PaymentRecord, error) {
	args := m.Called(ctx, monthTag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentRecord), args.Error(1)
}

func (m *PaymentsMock) RemovePayment(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type CustomersMock struct{ mock.Mock }

func (m *CustomersMock) ReadCustomer(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *CustomersMock) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestExtendEndDate(t *testing.T) {
	today := time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		endDate time.Time
		want    time.Time
	}{
		{
			name:    "active subscription extends from end date",
			endDate: today.AddDate(0, 0, 10),
			want:    today.AddDate(0, 0, 40),
		},
		{
			name:    "expired subscription extends from today",
			endDate: today.AddDate(0, 0, -5),
			want:    today.AddDate(0, 0, 30),
		},
		{
			name:    "ending today extends from today",
			endDate: today,
			want:    today.AddDate(0, 0, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtendEndDate(tt.endDate, today))
		})
	}
}

func TestService_Record_ExpiredCustomer(t *testing.T) {
	payments := new(PaymentsMock)
	customers := new(CustomersMock)

	// Клиент с ценой 2500, ничего не оплачено, подписка истекла вчера.
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	customers.On("ReadCustomer", mock.Anything, "c1").Return(&models.Customer{
		ID:            "c1",
		Name:          "Anita Sharma",
		PricePerMonth: 2500,
		EndDate:       yesterday,
		TotalPaid:     0,
		IsActive:      true,
	}, nil)

	var gotCustomer models.Customer
	payments.On("RecordPayment", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotCustomer = args.Get(2).(models.Customer)
		}).Return(nil)

	svc := New(payments, customers, testLogger())
	record, err := svc.Record(context.Background(), models.DummyPayment{CustomerID: "c1", Method: "cash"})

	require.NoError(t, err)
	// Нулевая сумма в запросе — списана месячная цена.
	assert.Equal(t, 2500, record.Amount)
	assert.Equal(t, models.MonthTagFor(time.Now().UTC()), record.MonthTag)
	assert.Equal(t, "Anita Sharma", record.CustomerName)
	assert.NotEmpty(t, record.ID)

	// Новый период считается от сегодняшнего дня, не от истёкшей даты.
	assert.Equal(t, 2500, gotCustomer.TotalPaid)
	wantEnd := time.Now().UTC().AddDate(0, 0, 30)
	assert.WithinDuration(t, wantEnd, gotCustomer.EndDate, time.Minute)
}

func TestService_Record_ExplicitAmount(t *testing.T) {
	payments := new(PaymentsMock)
	customers := new(CustomersMock)

	end := time.Now().UTC().AddDate(0, 0, 10)
	customers.On("ReadCustomer", mock.Anything, "c1").Return(&models.Customer{
		ID: "c1", Name: "Ravi", PricePerMonth: 2500, EndDate: end, TotalPaid: 1000,
	}, nil)

	var gotCustomer models.Customer
	payments.On("RecordPayment", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotCustomer = args.Get(2).(models.Customer)
		}).Return(nil)

	svc := New(payments, customers, testLogger())
	record, err := svc.Record(context.Background(), models.DummyPayment{CustomerID: "c1", Amount: 500, Method: "bank"})

	require.NoError(t, err)
	assert.Equal(t, 500, record.Amount)
	assert.Equal(t, 1500, gotCustomer.TotalPaid)
	// Действующая подписка продлевается от своей границы.
	assert.Equal(t, end.AddDate(0, 0, 30), gotCustomer.EndDate)
}

func TestService_Record_CustomerNotFound(t *testing.T) {
	payments := new(PaymentsMock)
	customers := new(CustomersMock)
	customers.On("ReadCustomer", mock.Anything, "ghost").Return(nil, nil)

	svc := New(payments, customers, testLogger())
	_, err := svc.Record(context.Background(), models.DummyPayment{CustomerID: "ghost", Method: "cash"})

	require.Error(t, err)
	payments.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerFor_OrphansExcludedFromCollected(t *testing.T) {
	records := []*models.PaymentRecord{
		{ID: "p1", CustomerID: "alive", Amount: 2500},
		{ID: "p2", CustomerID: "deleted", Amount: 1800},
		{ID: "p3", CustomerID: "alive", Amount: 500},
	}
	existing := map[string]struct{}{"alive": {}}

	entries, collected, orphans := LedgerFor(records, existing)

	require.Len(t, entries, 3)
	assert.False(t, entries[0].IsOrphan)
	assert.True(t, entries[1].IsOrphan)
	assert.Equal(t, 3000, collected)
	assert.Equal(t, 1, orphans)
}

func TestService_ListMonth(t *testing.T) {
	payments := new(PaymentsMock)
	customers := new(CustomersMock)

	payments.On("ListPaymentsByMonth", mock.Anything, "2026-02").Return([]*models.PaymentRecord{
		{ID: "p1", CustomerID: "c1", Amount: 2500, MonthTag: "2026-02"},
		{ID: "p2", CustomerID: "gone", Amount: 1800, MonthTag: "2026-02"},
	}, nil)
	customers.On("ListCustomers", mock.Anything).Return([]*models.Customer{
		{ID: "c1", PricePerMonth: 2500, TotalPaid: 2500, IsActive: true},
		{ID: "c2", PricePerMonth: 3000, TotalPaid: 1000, IsActive: true},
		{ID: "c3", PricePerMonth: 2000, IsActive: false},
	}, nil)

	svc := New(payments, customers, testLogger())
	got, err := svc.ListMonth(context.Background(), "2026-02")

	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	assert.True(t, got.Entries[1].IsOrphan)
	assert.Equal(t, MonthSummary{
		Collected:   2500,
		Expected:    5500,
		Outstanding: 2000,
		ActiveCount: 2,
		OrphanCount: 1,
	}, got.Summary)
}

func TestService_Remove(t *testing.T) {
	payments := new(PaymentsMock)
	customers := new(CustomersMock)
	payments.On("RemovePayment", mock.Anything, "p1").Return(1, nil)

	svc := New(payments, customers, testLogger())
	count, err := svc.Remove(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
