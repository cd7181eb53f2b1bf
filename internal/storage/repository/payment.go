package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// RecordPayment атомарно сохраняет запись платежа и обновлённого клиента.
// Обе записи в одной транзакции: журнал без продления периода и
// продление без журнала одинаково недопустимы.
func (s *Storage) RecordPayment(ctx context.Context, record models.PaymentRecord, customer models.Customer) error {
	const op = "storage.RecordPayment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertQuery := `INSERT INTO payments (id, customer_id, customer_name, amount, date, method, month_tag)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = tx.ExecContext(ctx, insertQuery,
		record.ID, record.CustomerID, record.CustomerName,
		record.Amount, record.Date, record.Method, record.MonthTag)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	updateQuery := `UPDATE customers SET total_paid = $1, end_date = $2 WHERE id = $3`
	result, err := tx.ExecContext(ctx, updateQuery, customer.TotalPaid, customer.EndDate, customer.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: customer %s not found", op, customer.ID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListPaymentsByMonth возвращает записи месяца по метке "YYYY-MM",
// новые сверху.
func (s *Storage) ListPaymentsByMonth(ctx context.Context, monthTag string) ([]*models.PaymentRecord, error) {
	const op = "storage.ListPaymentsByMonth"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, customer_id, customer_name, amount, date, method, month_tag
			  FROM payments
			  WHERE month_tag = $1
			  ORDER BY date DESC`
	rows, err := s.DB.QueryContext(ctx, query, monthTag)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PaymentRecord
	for rows.Next() {
		var r models.PaymentRecord
		if err := rows.Scan(&r.ID, &r.CustomerID, &r.CustomerName,
			&r.Amount, &r.Date, &r.Method, &r.MonthTag); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemovePayment удаляет запись журнала и возвращает число удалённых записей.
func (s *Storage) RemovePayment(ctx context.Context, id string) (int, error) {
	const op = "storage.RemovePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM payments WHERE id = $1`
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
