package service

import (
	"context"
	"errors"
	"log/slog"

	"cuesplit/internal/models"
	"cuesplit/internal/storage"
)

// TableService manages the venue's billiards tables.
type TableService struct {
	store storage.Store
}

// NewTableService creates a new TableService with the given storage backend.
func NewTableService(store storage.Store) *TableService {
	return &TableService{store: store}
}

// CreateTableRequest carries the fields for adding a table.
type CreateTableRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	HourlyRate int64  `json:"hourly_rate"`
	Status     string `json:"status"`
}

// PatchTableRequest carries a partial table edit. Nil fields keep their
// stored value.
type PatchTableRequest struct {
	Name       *string `json:"name"`
	Type       *string `json:"type"`
	HourlyRate *int64  `json:"hourly_rate"`
	Status     *string `json:"status"`
}

// List returns all tables ordered by name.
func (s *TableService) List(ctx context.Context) ([]models.Table, error) {
	return s.store.ListTables(ctx)
}

// Create adds a table. Name, type and a positive hourly rate are required.
func (s *TableService) Create(ctx context.Context, req CreateTableRequest) (*models.Table, error) {
	if req.Name == "" {
		return nil, Validationf("name is required")
	}
	if req.Type == "" {
		return nil, Validationf("type is required")
	}
	if req.HourlyRate <= 0 {
		return nil, Validationf("hourly_rate must be positive")
	}
	if req.Status != "" && req.Status != models.TableAvailable && req.Status != models.TableOccupied {
		return nil, Validationf("invalid status %q", req.Status)
	}

	table := &models.Table{
		Name:       req.Name,
		Type:       req.Type,
		HourlyRate: req.HourlyRate,
		Status:     req.Status,
	}
	if err := s.store.CreateTable(ctx, table); err != nil {
		slog.Error("CreateTable failed", "error", err)
		return nil, err
	}

	slog.Info("Table created", "table_id", table.ID, "name", table.Name)
	return table, nil
}

// Patch applies a partial edit: present fields overwrite, absent fields
// preserve the prior value.
func (s *TableService) Patch(ctx context.Context, id string, req PatchTableRequest) (*models.Table, error) {
	table, err := s.store.GetTable(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, NotFoundf("table not found")
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, Validationf("name cannot be empty")
		}
		table.Name = *req.Name
	}
	if req.Type != nil {
		if *req.Type == "" {
			return nil, Validationf("type cannot be empty")
		}
		table.Type = *req.Type
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate <= 0 {
			return nil, Validationf("hourly_rate must be positive")
		}
		table.HourlyRate = *req.HourlyRate
	}
	if req.Status != nil {
		if *req.Status != models.TableAvailable && *req.Status != models.TableOccupied {
			return nil, Validationf("invalid status %q", *req.Status)
		}
		table.Status = *req.Status
	}

	if err := s.store.UpdateTable(ctx, table); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NotFoundf("table not found")
		}
		slog.Error("UpdateTable failed", "table_id", id, "error", err)
		return nil, err
	}

	slog.Info("Table updated", "table_id", id)
	return table, nil
}
