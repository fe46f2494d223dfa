// Package postgres implements the PostgreSQL persistence layer for the exam
// scheduler.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
	"github.com/examdesk/exam-scheduler/internal/domain/shared"
	"github.com/examdesk/exam-scheduler/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE REPOSITORY IMPLEMENTATION
// Persists generated schedule runs: the session list, per-session rosters and
// the violation report. Implements scheduling.ScheduleRepository.
// ══════════════════════════════════════════════════════════════════════════════

// ScheduleRepository stores schedule runs in PostgreSQL.
type ScheduleRepository struct {
	conn *Connection
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(conn *Connection) *ScheduleRepository {
	return &ScheduleRepository{conn: conn}
}

// SaveSchedule writes the schedule, its sessions, rosters and violations in
// one transaction. Saving an existing schedule ID replaces the stored run.
func (r *ScheduleRepository) SaveSchedule(ctx context.Context, schedule *scheduling.Schedule, violations []string) error {
	if schedule == nil {
		return shared.ErrInvalidInput
	}

	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, schedule.ID()); err != nil {
			return fmt.Errorf("failed to clear previous run: %w", err)
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO schedules (id, session_count, student_count, created_at)
			VALUES ($1, $2, $3, $4)
		`, schedule.ID(), schedule.SessionCount(), len(schedule.Students()), schedule.CreatedAt())
		if err != nil {
			return fmt.Errorf("failed to insert schedule: %w", err)
		}

		for _, sess := range schedule.Sessions() {
			var roomID *string
			if room := sess.Room(); room != nil {
				id := room.ID().String()
				roomID = &id
			}
			var slotDate *time.Time
			var startMinute, endMinute *int
			if slot := sess.TimeSlot(); slot != nil {
				d := slot.Date()
				date := timeutil.UTCDate(d.Year, d.Month, d.Day)
				start, end := int(slot.Start()), int(slot.End())
				slotDate, startMinute, endMinute = &date, &start, &end
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO exam_sessions (
					id, schedule_id, exam_id, room_id,
					slot_date, start_minute, end_minute, max_capacity
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, sess.ID().String(), schedule.ID(), sess.Exam().ID().String(), roomID,
				slotDate, startMinute, endMinute, sess.MaxCapacity())
			if err != nil {
				return fmt.Errorf("failed to insert session %s: %w", sess.ID(), err)
			}

			for i, st := range sess.AssignedStudents() {
				_, err := tx.Exec(ctx, `
					INSERT INTO session_students (session_id, student_id, position)
					VALUES ($1, $2, $3)
				`, sess.ID().String(), st.ID().String(), i)
				if err != nil {
					return fmt.Errorf("failed to insert roster entry: %w", err)
				}
			}
		}

		for i, v := range violations {
			_, err := tx.Exec(ctx, `
				INSERT INTO schedule_violations (schedule_id, position, description)
				VALUES ($1, $2, $3)
			`, schedule.ID(), i, v)
			if err != nil {
				return fmt.Errorf("failed to insert violation: %w", err)
			}
		}

		return nil
	})
}

// GetScheduleSummary returns the stored summary of a schedule run.
func (r *ScheduleRepository) GetScheduleSummary(ctx context.Context, id string) (*scheduling.ScheduleSummary, error) {
	summary := &scheduling.ScheduleSummary{ID: id}

	err := r.conn.QueryRow(ctx, `
		SELECT session_count, student_count, created_at
		FROM schedules
		WHERE id = $1
	`, id).Scan(&summary.SessionCount, &summary.StudentCount, &summary.CreatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	rows, err := r.conn.Query(ctx, `
		SELECT description
		FROM schedule_violations
		WHERE schedule_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var description string
		if err := rows.Scan(&description); err != nil {
			return nil, fmt.Errorf("failed to scan violation row: %w", err)
		}
		summary.Violations = append(summary.Violations, description)
	}

	return summary, rows.Err()
}

// ListScheduleIDs returns stored schedule IDs, newest first.
func (r *ScheduleRepository) ListScheduleIDs(ctx context.Context) ([]string, error) {
	rows, err := r.conn.Query(ctx, `SELECT id FROM schedules ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan schedule row: %w", err)
		}
		out = append(out, id)
	}

	return out, rows.Err()
}

// DeleteSchedule removes a stored run and its sessions and violations.
func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, id string) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrScheduleNotFound
	}
	return nil
}
