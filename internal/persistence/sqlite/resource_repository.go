package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/proxiglass/planning/internal/persistence"
)

// CreateResource inserts a new vehicle/technician entry.
func (s *Storage) CreateResource(ctx context.Context, resource persistence.Resource) error {
	if resource.ID == "" {
		return fmt.Errorf("sqlite: resource id is empty")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO resources (id, name, created_at, updated_at)
			VALUES (?, ?, ?, ?)`,
			resource.ID, resource.Name,
			resource.CreatedAt.UTC().Format(time.RFC3339),
			resource.UpdatedAt.UTC().Format(time.RFC3339),
		)
		if isUniqueViolation(err) {
			return persistence.ErrDuplicate
		}
		return err
	})
}

// UpdateResource renames an existing entry.
func (s *Storage) UpdateResource(ctx context.Context, resource persistence.Resource) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE resources SET name = ?, updated_at = ? WHERE id = ?`,
			resource.Name,
			resource.UpdatedAt.UTC().Format(time.RFC3339),
			resource.ID,
		)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

// GetResource retrieves one entry by id.
func (s *Storage) GetResource(ctx context.Context, id string) (persistence.Resource, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM resources WHERE id = ?`, id)

	resource, err := scanResource(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.Resource{}, persistence.ErrNotFound
	}
	return resource, err
}

// ListResources returns the catalog ordered by creation time.
func (s *Storage) ListResources(ctx context.Context) ([]persistence.Resource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM resources
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	resources := make([]persistence.Resource, 0)
	for rows.Next() {
		resource, err := scanResource(rows.Scan)
		if err != nil {
			continue
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

// DeleteResource removes one entry.
func (s *Storage) DeleteResource(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

func scanResource(scan func(dest ...any) error) (persistence.Resource, error) {
	var resource persistence.Resource
	var createdAt, updatedAt string

	if err := scan(&resource.ID, &resource.Name, &createdAt, &updatedAt); err != nil {
		return persistence.Resource{}, err
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		resource.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		resource.UpdatedAt = ts
	}
	return resource, nil
}
