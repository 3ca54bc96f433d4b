package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/proxiglass/planning/internal/persistence"
	"github.com/proxiglass/planning/internal/scheduling"
)

const appointmentColumns = `id, date, start_time, end_time, resource_id, service, status,
	title, client, phone, address, location_type, plate, insurer, claim_number,
	price, notes, created_at, updated_at`

// CreateAppointment inserts a new appointment row.
func (s *Storage) CreateAppointment(ctx context.Context, appt scheduling.Appointment) error {
	if appt.ID == "" {
		return fmt.Errorf("sqlite: appointment id is empty")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO appointments (`+appointmentColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			appt.ID, appt.Date, appt.StartTime, appt.EndTime, appt.ResourceID,
			appt.Service, string(appt.Status), appt.Title, appt.Client,
			appt.Phone, appt.Address, appt.LocationType, appt.Plate,
			appt.Insurer, appt.ClaimNumber, appt.Price, appt.Notes,
			appt.CreatedAt.UTC().Format(time.RFC3339),
			appt.UpdatedAt.UTC().Format(time.RFC3339),
		)
		if isUniqueViolation(err) {
			return persistence.ErrDuplicate
		}
		return err
	})
}

// UpdateAppointment replaces every mutable field of an existing row.
func (s *Storage) UpdateAppointment(ctx context.Context, appt scheduling.Appointment) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE appointments
			SET date = ?, start_time = ?, end_time = ?, resource_id = ?,
				service = ?, status = ?, title = ?, client = ?, phone = ?,
				address = ?, location_type = ?, plate = ?, insurer = ?,
				claim_number = ?, price = ?, notes = ?, updated_at = ?
			WHERE id = ?`,
			appt.Date, appt.StartTime, appt.EndTime, appt.ResourceID,
			appt.Service, string(appt.Status), appt.Title, appt.Client,
			appt.Phone, appt.Address, appt.LocationType, appt.Plate,
			appt.Insurer, appt.ClaimNumber, appt.Price, appt.Notes,
			appt.UpdatedAt.UTC().Format(time.RFC3339),
			appt.ID,
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

// GetAppointment retrieves one appointment by id.
func (s *Storage) GetAppointment(ctx context.Context, id string) (scheduling.Appointment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)

	appt, err := scanAppointment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return scheduling.Appointment{}, persistence.ErrNotFound
	}
	return appt, err
}

// ListAppointments returns the full committed set ordered by date and start
// time. Rows that fail to decode are skipped so a damaged store degrades to
// a smaller set instead of failing the read path.
func (s *Storage) ListAppointments(ctx context.Context) ([]scheduling.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		ORDER BY date, start_time, id`)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]scheduling.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows.Scan)
		if err != nil {
			continue
		}
		appointments = append(appointments, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

// DeleteAppointment removes one appointment. Deletion is immediate and
// irreversible.
func (s *Storage) DeleteAppointment(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
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

// DeleteAllAppointments clears the appointment set.
func (s *Storage) DeleteAllAppointments(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM appointments`)
		return err
	})
}

func scanAppointment(scan func(dest ...any) error) (scheduling.Appointment, error) {
	var appt scheduling.Appointment
	var status, createdAt, updatedAt string

	err := scan(
		&appt.ID, &appt.Date, &appt.StartTime, &appt.EndTime, &appt.ResourceID,
		&appt.Service, &status, &appt.Title, &appt.Client, &appt.Phone,
		&appt.Address, &appt.LocationType, &appt.Plate, &appt.Insurer,
		&appt.ClaimNumber, &appt.Price, &appt.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return scheduling.Appointment{}, err
	}

	appt.Status = scheduling.Status(status)
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		appt.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		appt.UpdatedAt = ts
	}
	return appt, nil
}
