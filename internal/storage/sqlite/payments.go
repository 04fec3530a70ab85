package sqlite

import (
	"context"
	"fmt"

	"cuesplit/internal/models"
)

// ListPayments returns the full payment log, newest first.
func (s *SQLiteStore) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.listPaymentsWhere(ctx, "", nil)
}

// ListBillPayments returns the payment log entries for one bill,
// newest first.
func (s *SQLiteStore) ListBillPayments(ctx context.Context, billID string) ([]models.Payment, error) {
	return s.listPaymentsWhere(ctx, "WHERE bill_id = ?", []any{billID})
}

func (s *SQLiteStore) listPaymentsWhere(ctx context.Context, where string, args []any) ([]models.Payment, error) {
	q := "SELECT id, bill_id, member_id, amount, method, status, created_at FROM payments " +
		where + " ORDER BY created_at DESC, id"
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.BillID, &p.MemberID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
