package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/tiffin-admin/internal/lib/week"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// ReadOverride возвращает отметку по паре (дата, клиент), nil если её нет.
func (s *Storage) ReadOverride(ctx context.Context, date time.Time, customerID string) (*models.AttendanceOverride, error) {
	const op = "storage.ReadOverride"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT date, customer_id, lunch, dinner, updated_at
			  FROM attendance_overrides
			  WHERE date = $1 AND customer_id = $2`
	row := s.DB.QueryRowContext(ctx, query, date, customerID)

	var result models.AttendanceOverride
	err := row.Scan(&result.Date, &result.CustomerID, &result.Lunch, &result.Dinner, &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpsertOverride создаёт или перезаписывает отметку целиком.
func (s *Storage) UpsertOverride(ctx context.Context, override models.AttendanceOverride) error {
	const op = "storage.UpsertOverride"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO attendance_overrides (date, customer_id, lunch, dinner, updated_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (date, customer_id)
			  DO UPDATE SET lunch = $3, dinner = $4, updated_at = $5`
	_, err := s.DB.ExecContext(ctx, query,
		override.Date, override.CustomerID, override.Lunch, override.Dinner, override.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListOverridesByDate возвращает отметки на дату, ключ — ID клиента.
func (s *Storage) ListOverridesByDate(ctx context.Context, date time.Time) (map[string]*models.AttendanceOverride, error) {
	const op = "storage.ListOverridesByDate"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT date, customer_id, lunch, dinner, updated_at
			  FROM attendance_overrides
			  WHERE date = $1`
	rows, err := s.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[string]*models.AttendanceOverride)
	for rows.Next() {
		var o models.AttendanceOverride
		if err := rows.Scan(&o.Date, &o.CustomerID, &o.Lunch, &o.Dinner, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[o.CustomerID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListOverridesByDates возвращает отметки по нескольким датам,
// сгруппированные по дате в формате ISO.
func (s *Storage) ListOverridesByDates(ctx context.Context, dates []time.Time) (map[string]map[string]*models.AttendanceOverride, error) {
	const op = "storage.ListOverridesByDates"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if len(dates) == 0 {
		return map[string]map[string]*models.AttendanceOverride{}, nil
	}

	query := `SELECT date, customer_id, lunch, dinner, updated_at
			  FROM attendance_overrides
			  WHERE date = ANY($1)`
	rows, err := s.DB.QueryContext(ctx, query, dates)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[string]map[string]*models.AttendanceOverride)
	for rows.Next() {
		var o models.AttendanceOverride
		if err := rows.Scan(&o.Date, &o.CustomerID, &o.Lunch, &o.Dinner, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		key := week.FormatISO(o.Date)
		if result[key] == nil {
			result[key] = make(map[string]*models.AttendanceOverride)
		}
		result[key][o.CustomerID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
