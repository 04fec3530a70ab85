package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"cuesplit/internal/models"
	"cuesplit/internal/storage"
)

// CreateTable persists a new table, generating the ID when unset and
// defaulting the status to available.
func (s *SQLiteStore) CreateTable(ctx context.Context, t *models.Table) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = models.TableAvailable
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tables (id, name, type, hourly_rate, status) VALUES (?, ?, ?, ?, ?)",
		t.ID, t.Name, t.Type, t.HourlyRate, t.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}
	return nil
}

// GetTable retrieves a table by ID.
func (s *SQLiteStore) GetTable(ctx context.Context, id string) (*models.Table, error) {
	t := &models.Table{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, type, hourly_rate, status FROM tables WHERE id = ?",
		id,
	).Scan(&t.ID, &t.Name, &t.Type, &t.HourlyRate, &t.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return t, nil
}

// ListTables returns all tables ordered by name ascending.
func (s *SQLiteStore) ListTables(ctx context.Context) ([]models.Table, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, type, hourly_rate, status FROM tables ORDER BY name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	tables := []models.Table{}
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.HourlyRate, &t.Status); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tables: %w", err)
	}
	return tables, nil
}

// UpdateTable overwrites the stored row with t.
func (s *SQLiteStore) UpdateTable(ctx context.Context, t *models.Table) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tables SET name = ?, type = ?, hourly_rate = ?, status = ? WHERE id = ?",
		t.Name, t.Type, t.HourlyRate, t.Status, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update table: %w", err)
	}
	return requireRow(res)
}
