package forecast

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tiffin-admin/internal/lib/week"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func testDate() time.Time {
	return time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)
}

func testCustomers(date time.Time) []*models.Customer {
	return []*models.Customer{
		// Подписан на оба приёма, без отметок.
		{ID: "both", IsActive: true, EndDate: date.AddDate(0, 0, 10)},
		// Не подписан на ужин.
		{ID: "lunch-only", IsActive: true, EndDate: date.AddDate(0, 0, 10),
			MealsPerDay: models.MealsPerDay{Dinner: boolPtr(false)}},
		// Истёкшая подписка — не учитывается вовсе.
		{ID: "expired", IsActive: true, EndDate: date.AddDate(0, 0, -1)},
		// Вручную выключен.
		{ID: "inactive", IsActive: false, EndDate: date.AddDate(0, 0, 10)},
	}
}

func TestCountForDay(t *testing.T) {
	date := testDate()
	customers := testCustomers(date)

	tests := []struct {
		name      string
		overrides map[string]*models.AttendanceOverride
		want      DayCount
	}{
		{
			name:      "no overrides counts all subscribed",
			overrides: map[string]*models.AttendanceOverride{},
			want:      DayCount{Lunch: 2, Dinner: 1},
		},
		{
			name: "lunch opt-out excludes from lunch only",
			overrides: map[string]*models.AttendanceOverride{
				"both": {Lunch: boolPtr(false)},
			},
			want: DayCount{Lunch: 1, Dinner: 1},
		},
		{
			name: "override cannot add unsubscribed meal",
			overrides: map[string]*models.AttendanceOverride{
				"lunch-only": {Dinner: boolPtr(true)},
			},
			want: DayCount{Lunch: 2, Dinner: 1},
		},
		{
			name: "override on expired customer is ignored",
			overrides: map[string]*models.AttendanceOverride{
				"expired": {Lunch: boolPtr(true), Dinner: boolPtr(true)},
			},
			want: DayCount{Lunch: 2, Dinner: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountForDay(customers, tt.overrides, date))
		})
	}
}

func TestCustomersForMeal(t *testing.T) {
	date := testDate()
	customers := testCustomers(date)
	overrides := map[string]*models.AttendanceOverride{
		"both": {Lunch: boolPtr(false)},
	}

	lunch := CustomersForMeal(customers, overrides, date, models.MealLunch)
	require.Len(t, lunch, 1)
	assert.Equal(t, "lunch-only", lunch[0].ID)

	dinner := CustomersForMeal(customers, overrides, date, models.MealDinner)
	require.Len(t, dinner, 1)
	assert.Equal(t, "both", dinner[0].ID)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

type OverrideRepoMock struct{ mock.Mock }

func (m *OverrideRepoMock) ListOverridesByDate(ctx context.Context, date time.Time) (map[string]*models.AttendanceOverride, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.AttendanceOverride), args.Error(1)
}
func (m *OverrideRepoMock) ListOverridesByDates(ctx context.Context, dates []time.Time) (map[string]map[string]*models.AttendanceOverride, error) {
	args := m.Called(ctx, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]map[string]*models.AttendanceOverride), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestService_ForecastWeek(t *testing.T) {
	customers := new(CustomerRepoMock)
	overrides := new(OverrideRepoMock)

	// 2026-W08: понедельник 16 февраля. Все даты недели в пределах подписки.
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	customers.On("ListCustomers", mock.Anything).Return([]*models.Customer{
		{ID: "a", IsActive: true, EndDate: end},
		{ID: "b", IsActive: true, EndDate: end, MealsPerDay: models.MealsPerDay{Dinner: boolPtr(false)}},
	}, nil)
	overrides.On("ListOverridesByDates", mock.Anything, mock.Anything).Return(map[string]map[string]*models.AttendanceOverride{
		"2026-02-18": {"a": {Lunch: boolPtr(false)}},
	}, nil)

	svc := New(customers, overrides, testLogger())
	got, err := svc.ForecastWeek(context.Background(), "2026-W08")

	require.NoError(t, err)
	require.Len(t, got, 7)
	// Обычный день: обед 2, ужин 1, всего 3 тарелки.
	assert.Equal(t, DayForecast{Lunch: 2, Dinner: 1, Total: 3}, got[week.Monday])
	// Среда 18-го: клиент a отказался от обеда.
	assert.Equal(t, DayForecast{Lunch: 1, Dinner: 1, Total: 2}, got[week.Wednesday])
}

func TestService_CountToday(t *testing.T) {
	customers := new(CustomerRepoMock)
	overrides := new(OverrideRepoMock)
	date := testDate()

	customers.On("ListCustomers", mock.Anything).Return(testCustomers(date), nil)
	overrides.On("ListOverridesByDate", mock.Anything, date).Return(map[string]*models.AttendanceOverride{}, nil)

	svc := New(customers, overrides, testLogger())
	got, err := svc.CountToday(context.Background(), date)

	require.NoError(t, err)
	assert.Equal(t, DayCount{Lunch: 2, Dinner: 1}, got)
}
