package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cuesplit/internal/models"
	"cuesplit/internal/storage"
)

// CreateBill persists a bill, its participant rows and the table
// occupation in a single transaction. The payer's participant row is
// marked paid at creation; a failure anywhere leaves no rows behind.
func (s *SQLiteStore) CreateBill(ctx context.Context, bc storage.BillCreate) error {
	bill := bc.Bill
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.Status == "" {
		bill.Status = models.BillActive
	}
	now := time.Now().Unix()
	if bill.CreatedAt == 0 {
		bill.CreatedAt = now
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bills (id, date, total_amount, table_id, payer_id, status, start_time, end_time, notes, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			bill.ID, bill.Date, bill.TotalAmount, bill.TableID, bill.PayerID,
			bill.Status, bill.StartTime, bill.EndTime, bill.Notes, bill.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}

		for _, memberID := range bc.ParticipantIDs {
			hasPaid := 0
			paidAt := int64(0)
			if memberID == bill.PayerID {
				hasPaid = 1
				paidAt = now
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO bill_participants (bill_id, member_id, has_paid, paid_at) VALUES (?, ?, ?, ?)",
				bill.ID, memberID, hasPaid, paidAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert participant: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE tables SET status = ? WHERE id = ?",
			models.TableOccupied, bill.TableID,
		); err != nil {
			return fmt.Errorf("failed to occupy table: %w", err)
		}

		return nil
	})
}

// GetBill retrieves a bill row by ID.
func (s *SQLiteStore) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	bill := &models.Bill{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, date, total_amount, table_id, payer_id, status, start_time, end_time, notes, created_at
		 FROM bills WHERE id = ?`,
		id,
	).Scan(&bill.ID, &bill.Date, &bill.TotalAmount, &bill.TableID, &bill.PayerID,
		&bill.Status, &bill.StartTime, &bill.EndTime, &bill.Notes, &bill.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// ListBills returns bills newest first, each joined with its payer and
// carrying a member-id to paid-flag map. Participants come back one row
// per (bill, member) pair and are folded into the map here, so the
// result never depends on the pairing of concurrently aggregated
// columns.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]models.BillDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.date, b.total_amount, b.table_id, b.payer_id, b.status,
		        b.start_time, b.end_time, b.notes, b.created_at,
		        m.name, m.avatar, m.payment_qr
		 FROM bills b
		 JOIN members m ON b.payer_id = m.id
		 ORDER BY b.created_at DESC, b.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	details := []models.BillDetail{}
	index := map[string]int{}
	for rows.Next() {
		var d models.BillDetail
		if err := rows.Scan(&d.ID, &d.Date, &d.TotalAmount, &d.TableID, &d.PayerID,
			&d.Status, &d.StartTime, &d.EndTime, &d.Notes, &d.CreatedAt,
			&d.Organizer.Name, &d.Organizer.Avatar, &d.Organizer.PaymentQR); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		d.Organizer.ID = d.PayerID
		d.Participants = []string{}
		d.Payments = map[string]bool{}
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	pRows, err := s.db.QueryContext(ctx,
		"SELECT bill_id, member_id, has_paid FROM bill_participants ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer pRows.Close()

	for pRows.Next() {
		var billID, memberID string
		var hasPaid bool
		if err := pRows.Scan(&billID, &memberID, &hasPaid); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		i, ok := index[billID]
		if !ok {
			continue
		}
		details[i].Participants = append(details[i].Participants, memberID)
		details[i].Payments[memberID] = hasPaid
	}
	if err := pRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return details, nil
}

// ListParticipants returns the participant rows for one bill in
// insertion order.
func (s *SQLiteStore) ListParticipants(ctx context.Context, billID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bill_id, member_id, has_paid, payment_method, paid_at
		 FROM bill_participants WHERE bill_id = ? ORDER BY rowid`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.BillID, &p.MemberID, &p.HasPaid, &p.PaymentMethod, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// UpdateBillStatus flips a bill's status. When the bill leaves the
// active state its table is freed in the same transaction, so readers
// never see a closed bill still holding a table.
func (s *SQLiteStore) UpdateBillStatus(ctx context.Context, id, status string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var tableID string
		err := tx.QueryRowContext(ctx, "SELECT table_id FROM bills WHERE id = ?", id).Scan(&tableID)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get bill: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE bills SET status = ? WHERE id = ?", status, id,
		); err != nil {
			return fmt.Errorf("failed to update bill status: %w", err)
		}

		if status == models.BillCompleted || status == models.BillCancelled {
			if _, err := tx.ExecContext(ctx,
				"UPDATE tables SET status = ? WHERE id = ?",
				models.TableAvailable, tableID,
			); err != nil {
				return fmt.Errorf("failed to free table: %w", err)
			}
		}

		return nil
	})
}

// SetParticipantPaid updates one participant's payment flag. A payment
// record is appended only on the unpaid-to-paid edge, so repeating an
// identical call leaves exactly one log entry.
func (s *SQLiteStore) SetParticipantPaid(ctx context.Context, u storage.PaymentUpdate) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var wasPaid bool
		err := tx.QueryRowContext(ctx,
			"SELECT has_paid FROM bill_participants WHERE bill_id = ? AND member_id = ?",
			u.BillID, u.MemberID,
		).Scan(&wasPaid)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get participant: %w", err)
		}

		method := ""
		paidAt := int64(0)
		if u.Paid {
			method = u.Method
			paidAt = time.Now().Unix()
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE bill_participants SET has_paid = ?, payment_method = ?, paid_at = ? WHERE bill_id = ? AND member_id = ?",
			u.Paid, method, paidAt, u.BillID, u.MemberID,
		); err != nil {
			return fmt.Errorf("failed to update participant: %w", err)
		}

		if u.Paid && !wasPaid {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO payments (id, bill_id, member_id, amount, method, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
				uuid.New().String(), u.BillID, u.MemberID, u.Share, u.Method, models.PaymentCompleted, time.Now().Unix(),
			); err != nil {
				return fmt.Errorf("failed to insert payment: %w", err)
			}
		}

		return nil
	})
}

// DeleteBill removes a bill and its dependents: participants first,
// then the bill row, honoring the foreign key order.
func (s *SQLiteStore) DeleteBill(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists string
		err := tx.QueryRowContext(ctx, "SELECT id FROM bills WHERE id = ?", id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get bill: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM payments WHERE bill_id = ?", id,
		); err != nil {
			return fmt.Errorf("failed to delete payments: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM bill_participants WHERE bill_id = ?", id,
		); err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM bills WHERE id = ?", id,
		); err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}

		return nil
	})
}
