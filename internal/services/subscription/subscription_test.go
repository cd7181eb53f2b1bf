package subscription

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateCustomer(ctx context.Context, customer models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *RepoMock) ReadCustomer(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}
func (m *RepoMock) UpdateCustomer(ctx context.Context, customer models.Customer) (int, error) {
	args := m.Called(ctx, customer)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveCustomer(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysLeft_TableTests(t *testing.T) {
	today := date(2026, 2, 18)

	tests := []struct {
		name    string
		endDate time.Time
		want    int
	}{
		{name: "same calendar day is zero", endDate: date(2026, 2, 18), want: 0},
		{name: "tomorrow is one", endDate: date(2026, 2, 19), want: 1},
		{name: "yesterday is minus one", endDate: date(2026, 2, 17), want: -1},
		{name: "thirty days ahead", endDate: date(2026, 3, 20), want: 30},
		{name: "time of day ignored", endDate: time.Date(2026, 2, 19, 23, 59, 0, 0, time.UTC), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysLeft(tt.endDate, today))
		})
	}
}

func TestStatusFor_Boundaries(t *testing.T) {
	today := date(2026, 2, 18)

	tests := []struct {
		name    string
		endDate time.Time
		want    Status
	}{
		{name: "negative days left is expired", endDate: date(2026, 2, 17), want: StatusExpired},
		{name: "zero days left is expiring soon", endDate: date(2026, 2, 18), want: StatusExpiringSoon},
		{name: "three days left is expiring soon", endDate: date(2026, 2, 21), want: StatusExpiringSoon},
		{name: "four days left is active", endDate: date(2026, 2, 22), want: StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.endDate, today))
		})
	}
}

func TestDueAmount(t *testing.T) {
	assert.Equal(t, 2500, DueAmount(2500, 0))
	assert.Equal(t, 1000, DueAmount(2500, 1500))
	assert.Equal(t, 0, DueAmount(2500, 2500))
	assert.Equal(t, 0, DueAmount(2500, 2600))

	// Монотонно не возрастает по оплаченной сумме.
	prev := DueAmount(2500, 0)
	for paid := 100; paid <= 3000; paid += 100 {
		cur := DueAmount(2500, paid)
		assert.LessOrEqual(t, cur, prev)
		assert.GreaterOrEqual(t, cur, 0)
		prev = cur
	}
}

func TestService_Create(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(c models.Customer) bool {
		return c.Name == "Ahmed" && c.PricePerMonth == 2500 && c.IsActive &&
			c.EndDate.Equal(c.StartDate.AddDate(0, 0, 30))
	})).Return(nil)
	cache.On("Set", mock.Anything, mock.Anything, time.Hour).Return(nil)

	svc := New(repo, cache, testLogger())
	id, err := svc.Create(context.Background(), models.DummyCustomer{
		Name:          "Ahmed",
		PricePerMonth: 2500,
		StartDate:     "2026-02-18",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	repo.AssertExpectations(t)
}

func TestService_Create_InvalidStartDate(t *testing.T) {
	svc := New(new(RepoMock), new(CacheMock), testLogger())
	_, err := svc.Create(context.Background(), models.DummyCustomer{
		Name:          "Ahmed",
		PricePerMonth: 2500,
		StartDate:     "18-02-2026",
	})
	assert.Error(t, err)
}

func TestService_Read_CacheMiss(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	customer := &models.Customer{ID: "abc", Name: "Sara"}

	cache.On("Get", "customer:abc", mock.Anything).Return(false, nil)
	repo.On("ReadCustomer", mock.Anything, "abc").Return(customer, nil)
	cache.On("Set", "customer:abc", mock.Anything, time.Hour).Return(nil)

	svc := New(repo, cache, testLogger())
	got, err := svc.Read(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, "Sara", got.Name)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Remove_InvalidatesCache(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Invalidate", "customer:abc").Return(nil)
	repo.On("RemoveCustomer", mock.Anything, "abc").Return(1, nil)

	svc := New(repo, cache, testLogger())
	count, err := svc.Remove(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	cache.AssertExpectations(t)
}

func TestService_List_DerivesStatus(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ListCustomers", mock.Anything).Return([]*models.Customer{
		{ID: "1", Name: "Fresh", PricePerMonth: 2500, TotalPaid: 2500, EndDate: time.Now().AddDate(0, 0, 20)},
		{ID: "2", Name: "Late", PricePerMonth: 2500, TotalPaid: 0, EndDate: time.Now().AddDate(0, 0, -2)},
	}, nil)

	svc := New(repo, cache, testLogger())
	views, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, StatusActive, views[0].Status)
	assert.Equal(t, 0, views[0].DueAmount)
	assert.Equal(t, StatusExpired, views[1].Status)
	assert.Equal(t, 2500, views[1].DueAmount)
}

func TestService_List_RepoError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListCustomers", mock.Anything).Return(nil, errors.New("db error"))

	svc := New(repo, new(CacheMock), testLogger())
	_, err := svc.List(context.Background())
	assert.Error(t, err)
}
