// Package postgres implements the PostgreSQL persistence layer for the exam
// scheduler.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RESOURCE REPOSITORY IMPLEMENTATION
// Rooms, time slots and exams. Implements scheduling.RoomRepository,
// scheduling.TimeSlotRepository and scheduling.ExamRepository.
// ══════════════════════════════════════════════════════════════════════════════

// ResourceRepository stores scheduling resources in PostgreSQL.
type ResourceRepository struct {
	conn *Connection
}

// NewResourceRepository creates a new ResourceRepository.
func NewResourceRepository(conn *Connection) *ResourceRepository {
	return &ResourceRepository{conn: conn}
}

// ─────────────────────────────────────────────────────────────────────────────
// Rooms
// ─────────────────────────────────────────────────────────────────────────────

// CreateRoom inserts a new room record.
func (r *ResourceRepository) CreateRoom(ctx context.Context, room *scheduling.Room) error {
	query := `
		INSERT INTO rooms (id, name, capacity)
		VALUES ($1, $2, $3)
	`

	_, err := r.conn.Exec(ctx, query, room.ID().String(), room.Name(), room.Capacity())
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrRoomAlreadyExists
		}
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

// GetRoom returns a room by ID.
func (r *ResourceRepository) GetRoom(ctx context.Context, id scheduling.RoomID) (*scheduling.Room, error) {
	query := `
		SELECT id, name, capacity
		FROM rooms
		WHERE id = $1
	`

	var rid, name string
	var capacity int
	err := r.conn.QueryRow(ctx, query, id.String()).Scan(&rid, &name, &capacity)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return scheduling.NewRoom(scheduling.RoomID(rid), name, capacity)
}

// ListRooms returns all rooms in creation order.
func (r *ResourceRepository) ListRooms(ctx context.Context) ([]*scheduling.Room, error) {
	query := `
		SELECT id, name, capacity
		FROM rooms
		ORDER BY created_at, id
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var out []*scheduling.Room
	for rows.Next() {
		var rid, name string
		var capacity int
		if err := rows.Scan(&rid, &name, &capacity); err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}
		room, err := scheduling.NewRoom(scheduling.RoomID(rid), name, capacity)
		if err != nil {
			return nil, fmt.Errorf("stored room %s is invalid: %w", rid, err)
		}
		out = append(out, room)
	}

	return out, rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────
// Time slots
// ─────────────────────────────────────────────────────────────────────────────

// AddTimeSlot appends a time slot to the pool.
func (r *ResourceRepository) AddTimeSlot(ctx context.Context, slot *scheduling.TimeSlot) error {
	query := `
		INSERT INTO time_slots (slot_date, start_minute, end_minute)
		VALUES ($1, $2, $3)
	`

	date := slot.Date()
	_, err := r.conn.Exec(ctx, query,
		time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.UTC),
		int(slot.Start()), int(slot.End()))
	if err != nil {
		return fmt.Errorf("failed to add time slot: %w", err)
	}

	return nil
}

// ListTimeSlots returns the time slot pool in insertion order.
func (r *ResourceRepository) ListTimeSlots(ctx context.Context) ([]*scheduling.TimeSlot, error) {
	query := `
		SELECT slot_date, start_minute, end_minute
		FROM time_slots
		ORDER BY id
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list time slots: %w", err)
	}
	defer rows.Close()

	var out []*scheduling.TimeSlot
	for rows.Next() {
		var slotDate time.Time
		var startMinute, endMinute int
		if err := rows.Scan(&slotDate, &startMinute, &endMinute); err != nil {
			return nil, fmt.Errorf("failed to scan time slot row: %w", err)
		}
		slot, err := scheduling.NewTimeSlot(
			scheduling.NewDate(slotDate.Year(), slotDate.Month(), slotDate.Day()),
			scheduling.TimeOfDay(startMinute),
			scheduling.TimeOfDay(endMinute))
		if err != nil {
			return nil, fmt.Errorf("stored time slot is invalid: %w", err)
		}
		out = append(out, slot)
	}

	return out, rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────
// Exams
// ─────────────────────────────────────────────────────────────────────────────

// CreateExam inserts a new exam record.
func (r *ResourceRepository) CreateExam(ctx context.Context, exam *scheduling.Exam) error {
	query := `
		INSERT INTO exams (id, course_id, name, duration_minutes)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.conn.Exec(ctx, query,
		exam.ID().String(), exam.Course().ID().String(), exam.Name(),
		int(exam.Duration().Minutes()))
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrExamAlreadyExists
		}
		return fmt.Errorf("failed to create exam: %w", err)
	}

	return nil
}

// GetExam returns an exam by ID. The exam is linked to its stored course,
// but the course carries no enrollments; use LoadExams with a materialized
// roster when the full graph is needed.
func (r *ResourceRepository) GetExam(ctx context.Context, id scheduling.ExamID) (*scheduling.Exam, error) {
	query := `
		SELECT e.id, e.name, e.duration_minutes, c.id, c.code, c.name, c.credits
		FROM exams e
		JOIN courses c ON c.id = e.course_id
		WHERE e.id = $1
	`

	var eid, ename, cid, code, cname string
	var durationMinutes, credits int
	err := r.conn.QueryRow(ctx, query, id.String()).
		Scan(&eid, &ename, &durationMinutes, &cid, &code, &cname, &credits)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	course, err := scheduling.NewCourse(scheduling.CourseID(cid), code, cname, credits)
	if err != nil {
		return nil, fmt.Errorf("stored course %s is invalid: %w", cid, err)
	}
	return scheduling.NewExam(scheduling.ExamID(eid), course,
		ename, time.Duration(durationMinutes)*time.Minute)
}

// ListExams returns all exams in creation order, each linked to a bare
// course record.
func (r *ResourceRepository) ListExams(ctx context.Context) ([]*scheduling.Exam, error) {
	courses, err := listCoursesBare(ctx, r.conn)
	if err != nil {
		return nil, err
	}
	return r.LoadExams(ctx, courses)
}

// LoadExams returns all exams linked against the given courses, so that
// enrolled students are reachable through the course graph.
func (r *ResourceRepository) LoadExams(ctx context.Context, courses []*scheduling.Course) ([]*scheduling.Exam, error) {
	courseByID := make(map[scheduling.CourseID]*scheduling.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID()] = c
	}

	query := `
		SELECT id, course_id, name, duration_minutes
		FROM exams
		ORDER BY created_at, id
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	defer rows.Close()

	var out []*scheduling.Exam
	for rows.Next() {
		var eid, courseID, name string
		var durationMinutes int
		if err := rows.Scan(&eid, &courseID, &name, &durationMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan exam row: %w", err)
		}
		course, ok := courseByID[scheduling.CourseID(courseID)]
		if !ok {
			return nil, shared.ErrUnknownCourse
		}
		exam, err := scheduling.NewExam(scheduling.ExamID(eid), course,
			name, time.Duration(durationMinutes)*time.Minute)
		if err != nil {
			return nil, fmt.Errorf("stored exam %s is invalid: %w", eid, err)
		}
		out = append(out, exam)
	}

	return out, rows.Err()
}

func listCoursesBare(ctx context.Context, conn *Connection) ([]*scheduling.Course, error) {
	query := `
		SELECT id, code, name, credits
		FROM courses
		ORDER BY created_at, id
	`

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var out []*scheduling.Course
	for rows.Next() {
		var cid, code, name string
		var credits int
		if err := rows.Scan(&cid, &code, &name, &credits); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		course, err := scheduling.NewCourse(scheduling.CourseID(cid), code, name, credits)
		if err != nil {
			return nil, fmt.Errorf("stored course %s is invalid: %w", cid, err)
		}
		out = append(out, course)
	}

	return out, rows.Err()
}
