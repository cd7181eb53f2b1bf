package attendance

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

func boolPtr(v bool) *bool { return &v }

func TestIsAttending_PlanLevelOptIn(t *testing.T) {
	noDinner := models.Customer{MealsPerDay: models.MealsPerDay{Dinner: boolPtr(false)}}

	overrides := []*models.AttendanceOverride{
		nil,
		{Dinner: boolPtr(true)},
		{Dinner: boolPtr(false)},
		{Lunch: boolPtr(false)},
	}
	// Клиент без подписки на ужин не попадает в ужин ни при какой отметке,
	// даже если отметка явно говорит dinner: true.
	for _, ov := range overrides {
		assert.False(t, IsAttending(noDinner, ov, models.MealDinner))
	}
	// Обед при этом не затронут.
	assert.True(t, IsAttending(noDinner, nil, models.MealLunch))
}

func TestIsAttending_DayLevelOptOut(t *testing.T) {
	subscribed := models.Customer{}

	tests := []struct {
		name     string
		override *models.AttendanceOverride
		meal     models.Meal
		want     bool
	}{
		{name: "no override means attending", override: nil, meal: models.MealLunch, want: true},
		{name: "explicit false excludes", override: &models.AttendanceOverride{Lunch: boolPtr(false)}, meal: models.MealLunch, want: false},
		{name: "lunch opt-out leaves dinner counted", override: &models.AttendanceOverride{Lunch: boolPtr(false)}, meal: models.MealDinner, want: true},
		{name: "missing field on existing record defaults to attending", override: &models.AttendanceOverride{Dinner: boolPtr(false)}, meal: models.MealLunch, want: true},
		{name: "explicit true attends", override: &models.AttendanceOverride{Lunch: boolPtr(true)}, meal: models.MealLunch, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAttending(subscribed, tt.override, tt.meal))
		})
	}
}

func TestSubscribed_UnsetMeansSubscribed(t *testing.T) {
	assert.True(t, Subscribed(models.Customer{}, models.MealLunch))
	assert.True(t, Subscribed(models.Customer{MealsPerDay: models.MealsPerDay{Lunch: boolPtr(true)}}, models.MealLunch))
	assert.False(t, Subscribed(models.Customer{MealsPerDay: models.MealsPerDay{Lunch: boolPtr(false)}}, models.MealLunch))
}

type OverrideRepoMock struct{ mock.Mock }

func (m *OverrideRepoMock) ReadOverride(ctx context.Context, date time.Time, customerID string) (*models.AttendanceOverride, error) {
	args := m.Called(ctx, date, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceOverride), args.Error(1)
}
func (m *OverrideRepoMock) UpsertOverride(ctx context.Context, override models.AttendanceOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}
func (m *OverrideRepoMock) ListOverridesByDate(ctx context.Context, date time.Time) (map[string]*models.AttendanceOverride, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.AttendanceOverride), args.Error(1)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestService_Toggle_NoExistingRecord(t *testing.T) {
	overrides := new(OverrideRepoMock)
	date := time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)

	overrides.On("ReadOverride", mock.Anything, date, "cust-1").Return(nil, nil)
	overrides.On("UpsertOverride", mock.Anything, mock.MatchedBy(func(ov models.AttendanceOverride) bool {
		// Первое переключение обеда: обед выключен, ужин остаётся включённым.
		return ov.CustomerID == "cust-1" && ov.Lunch != nil && !*ov.Lunch && ov.Dinner != nil && *ov.Dinner
	})).Return(nil)

	svc := New(overrides, new(CustomerRepoMock), testLogger())
	attending, err := svc.Toggle(context.Background(), models.DummyToggle{
		CustomerID: "cust-1",
		Date:       "2026-02-18",
		Meal:       "lunch",
	})

	require.NoError(t, err)
	assert.False(t, attending)
	overrides.AssertExpectations(t)
}

func TestService_Toggle_FlipsBack(t *testing.T) {
	overrides := new(OverrideRepoMock)
	date := time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)
	existing := &models.AttendanceOverride{
		Date:       date,
		CustomerID: "cust-1",
		Lunch:      boolPtr(false),
		Dinner:     boolPtr(true),
	}

	overrides.On("ReadOverride", mock.Anything, date, "cust-1").Return(existing, nil)
	overrides.On("UpsertOverride", mock.Anything, mock.MatchedBy(func(ov models.AttendanceOverride) bool {
		return *ov.Lunch && *ov.Dinner
	})).Return(nil)

	svc := New(overrides, new(CustomerRepoMock), testLogger())
	attending, err := svc.Toggle(context.Background(), models.DummyToggle{
		CustomerID: "cust-1",
		Date:       "2026-02-18",
		Meal:       "lunch",
	})

	require.NoError(t, err)
	assert.True(t, attending)
}

func TestService_Toggle_InvalidDate(t *testing.T) {
	svc := New(new(OverrideRepoMock), new(CustomerRepoMock), testLogger())
	_, err := svc.Toggle(context.Background(), models.DummyToggle{
		CustomerID: "cust-1",
		Date:       "18.02.2026",
		Meal:       "lunch",
	})
	assert.Error(t, err)
}

func TestService_ListForDate_FiltersExpiredAndInactive(t *testing.T) {
	overrides := new(OverrideRepoMock)
	customers := new(CustomerRepoMock)
	date := time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)

	customers.On("ListCustomers", mock.Anything).Return([]*models.Customer{
		{ID: "ok", Name: "Ahmed", IsActive: true, EndDate: date.AddDate(0, 0, 10)},
		{ID: "expired", Name: "Old", IsActive: true, EndDate: date.AddDate(0, 0, -1)},
		{ID: "inactive", Name: "Paused", IsActive: false, EndDate: date.AddDate(0, 0, 10)},
	}, nil)
	overrides.On("ListOverridesByDate", mock.Anything, date).Return(map[string]*models.AttendanceOverride{
		"ok": {Lunch: boolPtr(false)},
	}, nil)

	svc := New(overrides, customers, testLogger())
	got, err := svc.ListForDate(context.Background(), date)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Customer.ID)
	assert.False(t, got[0].Lunch)
	assert.True(t, got[0].Dinner)
}
