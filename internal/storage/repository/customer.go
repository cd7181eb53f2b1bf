package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// CreateCustomer вставляет нового клиента.
func (s *Storage) CreateCustomer(ctx context.Context, customer models.Customer) error {
	const op = "storage.CreateCustomer"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO customers (id, name, phone, lunch, dinner, price_per_month,
			      start_date, end_date, total_paid, notes, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := s.DB.ExecContext(ctx, query,
		customer.ID, customer.Name, customer.Phone,
		customer.MealsPerDay.Lunch, customer.MealsPerDay.Dinner,
		customer.PricePerMonth, customer.StartDate, customer.EndDate,
		customer.TotalPaid, customer.Notes, customer.IsActive)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReadCustomer возвращает клиента по ID, nil если его нет.
func (s *Storage) ReadCustomer(ctx context.Context, id string) (*models.Customer, error) {
	const op = "storage.ReadCustomer"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, phone, lunch, dinner, price_per_month,
				start_date, end_date, total_paid, notes, is_active
			  FROM customers WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Customer
	err := row.Scan(&result.ID, &result.Name, &result.Phone,
		&result.MealsPerDay.Lunch, &result.MealsPerDay.Dinner,
		&result.PricePerMonth, &result.StartDate, &result.EndDate,
		&result.TotalPaid, &result.Notes, &result.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateCustomer обновляет данные клиента и возвращает число изменённых записей.
func (s *Storage) UpdateCustomer(ctx context.Context, customer models.Customer) (int, error) {
	const op = "storage.UpdateCustomer"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE customers
			  SET name = $1, phone = $2, lunch = $3, dinner = $4, price_per_month = $5,
			      start_date = $6, end_date = $7, total_paid = $8, notes = $9, is_active = $10
			  WHERE id = $11`
	result, err := s.DB.ExecContext(ctx, query,
		customer.Name, customer.Phone,
		customer.MealsPerDay.Lunch, customer.MealsPerDay.Dinner,
		customer.PricePerMonth, customer.StartDate, customer.EndDate,
		customer.TotalPaid, customer.Notes, customer.IsActive, customer.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCustomer физически удаляет клиента и возвращает число удалённых записей.
// Записи журнала платежей не трогаются.
func (s *Storage) RemoveCustomer(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveCustomer"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM customers WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListCustomers возвращает всех клиентов.
func (s *Storage) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	const op = "storage.ListCustomers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, phone, lunch, dinner, price_per_month,
				start_date, end_date, total_paid, notes, is_active
			  FROM customers
			  ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone,
			&c.MealsPerDay.Lunch, &c.MealsPerDay.Dinner,
			&c.PricePerMonth, &c.StartDate, &c.EndDate,
			&c.TotalPaid, &c.Notes, &c.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindCustomersExpiringSoon возвращает активных клиентов, у которых
// подписка заканчивается в ближайшие within дней, включая сегодня.
func (s *Storage) FindCustomersExpiringSoon(ctx context.Context, within int) ([]*models.Customer, error) {
	const op = "storage.FindCustomersExpiringSoon"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, phone, lunch, dinner, price_per_month,
				start_date, end_date, total_paid, notes, is_active
			  FROM customers
			  WHERE is_active = TRUE
			    AND end_date >= CURRENT_DATE
			    AND end_date <= CURRENT_DATE + $1::int
			  ORDER BY end_date`
	rows, err := s.DB.QueryContext(ctx, query, within)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone,
			&c.MealsPerDay.Lunch, &c.MealsPerDay.Dinner,
			&c.PricePerMonth, &c.StartDate, &c.EndDate,
			&c.TotalPaid, &c.Notes, &c.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
