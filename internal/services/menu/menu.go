package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/week"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// MenuRepository определяет методы хранилища для документов меню.
// Документы ключуются конкретной датой, не днём недели.
type MenuRepository interface {
	// ReadDayMenu возвращает сырой документ меню на дату, nil если его нет.
	ReadDayMenu(ctx context.Context, date time.Time) (*models.RawDayMenu, error)
	// SaveDayMenu сохраняет меню дня целиком.
	SaveDayMenu(ctx context.Context, date time.Time, menu models.DayMenu) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service операции над недельным меню.
type Service struct {
	repo  MenuRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый Service.
func New(repo MenuRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// GetWeek загружает меню недели: семь документов по датам недели,
// каждый прогоняется через нормализацию. Старые формы записей
// (рис строкой, поле side) здесь приводятся к каноническому виду.
func (s *Service) GetWeek(ctx context.Context, weekID string) (WeekMenu, error) {
	var cached WeekMenu
	cacheKey := fmt.Sprintf("menu:week:%s", weekID)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		return nil, err
	}
	if found {
		return cached, nil
	}

	dates, err := week.DatesForWeek(weekID)
	if err != nil {
		return nil, err
	}

	result := make(WeekMenu, len(week.Days))
	for i, day := range week.Days {
		raw, err := s.repo.ReadDayMenu(ctx, dates[i])
		if err != nil {
			return nil, err
		}
		if raw == nil {
			result[day] = models.EmptyDayMenu()
			continue
		}
		result[day] = models.NormalizeDayMenu(*raw)
	}

	if err := s.cache.Set(cacheKey, result, 10*time.Minute); err != nil {
		s.log.Warn("failed to cache week menu", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// SaveDays сохраняет перечисленные дни недели. Записи независимы:
// неудача одного дня не откатывает остальные. Возвращает сохранённые
// дни — вызывающая сторона повторяет только оставшиеся грязными.
func (s *Service) SaveDays(ctx context.Context, weekID string, days map[week.DayName]models.DayMenu) ([]week.DayName, error) {
	var saved []week.DayName
	var errs []error

	for day, dm := range days {
		date, err := week.DateForDayName(day, weekID)
		if err != nil {
			return saved, err
		}
		if err := s.repo.SaveDayMenu(ctx, date, dm); err != nil {
			s.log.Error("failed to save day menu",
				slog.String("week_id", weekID), slog.String("day", string(day)), sl.Err(err))
			errs = append(errs, fmt.Errorf("%s: %w", day, err))
			continue
		}
		saved = append(saved, day)
	}

	cacheKey := fmt.Sprintf("menu:week:%s", weekID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate week menu cache", slog.String("key", cacheKey), sl.Err(err))
	}

	if len(errs) > 0 {
		return saved, errors.Join(errs...)
	}
	s.log.Info("saved week menu days", slog.String("week_id", weekID), slog.Int("count", len(saved)))
	return saved, nil
}

// DuplicateDay копирует меню одного дня в целевые дни и сразу
// сохраняет их. Возвращает обновлённое меню недели.
func (s *Service) DuplicateDay(ctx context.Context, weekID string, source week.DayName, targets []week.DayName) (WeekMenu, error) {
	current, err := s.GetWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}

	planner := NewPlanner(current)
	planner.DuplicateDayTo(source, targets)

	dirty := make(map[week.DayName]models.DayMenu)
	for _, day := range planner.DirtyDays() {
		dirty[day] = planner.Menu[day]
	}
	saved, err := s.SaveDays(ctx, weekID, dirty)
	planner.ClearDirty(saved...)
	if err != nil {
		return planner.Menu, err
	}
	return planner.Menu, nil
}

// DuplicatePreviousWeek читает документы прошлой недели одноразовыми
// запросами и накладывает существующие дни на текущую неделю,
// сохраняя их. Дни, которых в прошлой неделе не было, не трогаются.
func (s *Service) DuplicatePreviousWeek(ctx context.Context, weekID string) (WeekMenu, error) {
	prevWeekID, err := week.PrevWeekID(weekID)
	if err != nil {
		return nil, err
	}
	prevDates, err := week.DatesForWeek(prevWeekID)
	if err != nil {
		return nil, err
	}

	overlay := make(WeekMenu)
	for i, day := range week.Days {
		raw, err := s.repo.ReadDayMenu(ctx, prevDates[i])
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		overlay[day] = models.NormalizeDayMenu(*raw)
	}

	current, err := s.GetWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}
	planner := NewPlanner(current)
	planner.Overlay(overlay)

	dirty := make(map[week.DayName]models.DayMenu)
	for _, day := range planner.DirtyDays() {
		dirty[day] = planner.Menu[day]
	}
	saved, err := s.SaveDays(ctx, weekID, dirty)
	planner.ClearDirty(saved...)
	if err != nil {
		return planner.Menu, err
	}
	s.log.Info("duplicated previous week menu",
		slog.String("week_id", weekID), slog.String("prev_week_id", prevWeekID), slog.Int("days", len(overlay)))
	return planner.Menu, nil
}
