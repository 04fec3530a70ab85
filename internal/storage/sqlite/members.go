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

// CreateMember persists a new member, generating the ID and timestamps
// when unset.
func (s *SQLiteStore) CreateMember(ctx context.Context, m *models.Member) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if m.CreatedAt == 0 {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, name, phone, avatar, payment_qr, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		m.ID, m.Name, m.Phone, m.Avatar, m.PaymentQR, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, id string) (*models.Member, error) {
	return s.getMemberWhere(ctx, "id = ?", id)
}

// GetMemberByPhone retrieves the member registered under phone.
func (s *SQLiteStore) GetMemberByPhone(ctx context.Context, phone string) (*models.Member, error) {
	return s.getMemberWhere(ctx, "phone = ?", phone)
}

func (s *SQLiteStore) getMemberWhere(ctx context.Context, where string, arg any) (*models.Member, error) {
	m := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, phone, avatar, payment_qr, created_at, updated_at FROM members WHERE "+where,
		arg,
	).Scan(&m.ID, &m.Name, &m.Phone, &m.Avatar, &m.PaymentQR, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// ListMembers returns all members ordered by name ascending.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, phone, avatar, payment_qr, created_at, updated_at FROM members ORDER BY name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Avatar, &m.PaymentQR, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// UpdateMember overwrites the stored row with m. The caller is expected
// to have loaded the row first and merged in any partial changes.
func (s *SQLiteStore) UpdateMember(ctx context.Context, m *models.Member) error {
	m.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		"UPDATE members SET name = ?, phone = ?, avatar = ?, payment_qr = ?, updated_at = ? WHERE id = ?",
		m.Name, m.Phone, m.Avatar, m.PaymentQR, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return requireRow(res)
}

// DeleteMember removes a member row.
func (s *SQLiteStore) DeleteMember(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return requireRow(res)
}

// requireRow converts a zero-row write into storage.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
