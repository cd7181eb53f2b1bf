package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// ReadDayMenu возвращает сырой документ меню на дату, nil если его нет.
// Слоты хранятся как JSONB и не разбираются до нормализации: в старых
// записях рис мог быть голой строкой, а extra называться side.
func (s *Storage) ReadDayMenu(ctx context.Context, date time.Time) (*models.RawDayMenu, error) {
	const op = "storage.ReadDayMenu"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT lunch, dinner FROM menu_days WHERE date = $1`
	row := s.DB.QueryRowContext(ctx, query, date)

	var lunch, dinner []byte
	err := row.Scan(&lunch, &dinner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result models.RawDayMenu
	if len(lunch) > 0 {
		var slot models.RawMealSlot
		if err := json.Unmarshal(lunch, &slot); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result.Lunch = &slot
	}
	if len(dinner) > 0 {
		var slot models.RawMealSlot
		if err := json.Unmarshal(dinner, &slot); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result.Dinner = &slot
	}
	return &result, nil
}

// SaveDayMenu сохраняет меню дня целиком в каноническом виде.
func (s *Storage) SaveDayMenu(ctx context.Context, date time.Time, menu models.DayMenu) error {
	const op = "storage.SaveDayMenu"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	lunch, err := json.Marshal(menu.Lunch)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	dinner, err := json.Marshal(menu.Dinner)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO menu_days (date, lunch, dinner, updated_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (date)
			  DO UPDATE SET lunch = $2, dinner = $3, updated_at = $4`
	_, err = s.DB.ExecContext(ctx, query, date, lunch, dinner, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
