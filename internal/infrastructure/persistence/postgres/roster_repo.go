// Package postgres implements the PostgreSQL persistence layer for the exam
// scheduler.
package postgres

import (
	"context"
	"fmt"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER REPOSITORY IMPLEMENTATION
// Students, courses and enrollments. Implements scheduling.StudentRepository
// and scheduling.CourseRepository.
// ══════════════════════════════════════════════════════════════════════════════

// RosterRepository stores roster records in PostgreSQL.
type RosterRepository struct {
	conn *Connection
}

// NewRosterRepository creates a new RosterRepository.
func NewRosterRepository(conn *Connection) *RosterRepository {
	return &RosterRepository{conn: conn}
}

// ─────────────────────────────────────────────────────────────────────────────
// Students
// ─────────────────────────────────────────────────────────────────────────────

// CreateStudent inserts a new student record.
func (r *RosterRepository) CreateStudent(ctx context.Context, s *scheduling.Student) error {
	query := `
		INSERT INTO students (id, first_name, last_name, email, gender)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.conn.Exec(ctx, query,
		s.ID().String(), s.FirstName(), s.LastName(), s.Email(), string(s.Gender()))
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrStudentAlreadyExists
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

// GetStudent returns a student by ID.
func (r *RosterRepository) GetStudent(ctx context.Context, id scheduling.StudentID) (*scheduling.Student, error) {
	query := `
		SELECT id, first_name, last_name, email, gender
		FROM students
		WHERE id = $1
	`

	var sid, firstName, lastName, email, gender string
	err := r.conn.QueryRow(ctx, query, id.String()).Scan(&sid, &firstName, &lastName, &email, &gender)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return scheduling.NewStudent(scheduling.NewStudentParams{
		ID:        scheduling.StudentID(sid),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Gender:    scheduling.Gender(gender),
	})
}

// ListStudents returns all students in creation order.
func (r *RosterRepository) ListStudents(ctx context.Context) ([]*scheduling.Student, error) {
	query := `
		SELECT id, first_name, last_name, email, gender
		FROM students
		ORDER BY created_at, id
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var out []*scheduling.Student
	for rows.Next() {
		var sid, firstName, lastName, email, gender string
		if err := rows.Scan(&sid, &firstName, &lastName, &email, &gender); err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		student, err := scheduling.NewStudent(scheduling.NewStudentParams{
			ID:        scheduling.StudentID(sid),
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Gender:    scheduling.Gender(gender),
		})
		if err != nil {
			return nil, fmt.Errorf("stored student %s is invalid: %w", sid, err)
		}
		out = append(out, student)
	}

	return out, rows.Err()
}

// DeleteStudent removes a student and, through cascades, its enrollments.
func (r *RosterRepository) DeleteStudent(ctx context.Context, id scheduling.StudentID) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM students WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrStudentNotFound
	}
	return nil
}

// CountStudents returns the number of student records.
func (r *RosterRepository) CountStudents(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Courses
// ─────────────────────────────────────────────────────────────────────────────

// CreateCourse inserts a new course record.
func (r *RosterRepository) CreateCourse(ctx context.Context, c *scheduling.Course) error {
	query := `
		INSERT INTO courses (id, code, name, credits)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.conn.Exec(ctx, query, c.ID().String(), c.Code(), c.Name(), c.Credits())
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrCourseAlreadyExists
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// GetCourse returns a course by ID.
func (r *RosterRepository) GetCourse(ctx context.Context, id scheduling.CourseID) (*scheduling.Course, error) {
	query := `
		SELECT id, code, name, credits
		FROM courses
		WHERE id = $1
	`

	var cid, code, name string
	var credits int
	err := r.conn.QueryRow(ctx, query, id.String()).Scan(&cid, &code, &name, &credits)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return scheduling.NewCourse(scheduling.CourseID(cid), code, name, credits)
}

// ListCourses returns all courses in creation order.
func (r *RosterRepository) ListCourses(ctx context.Context) ([]*scheduling.Course, error) {
	query := `
		SELECT id, code, name, credits
		FROM courses
		ORDER BY created_at, id
	`

	rows, err := r.conn.Query(ctx, query)
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

// SaveEnrollment upserts an enrollment record.
func (r *RosterRepository) SaveEnrollment(ctx context.Context, e *scheduling.Enrollment) error {
	query := `
		INSERT INTO enrollments (id, student_id, course_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
	`

	_, err := r.conn.Exec(ctx, query,
		e.ID().String(), e.Student().ID().String(), e.Course().ID().String(), string(e.Status()))
	if err != nil {
		return fmt.Errorf("failed to save enrollment: %w", err)
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Graph loading
// ─────────────────────────────────────────────────────────────────────────────

// LoadRoster materializes the full roster graph: students, courses and the
// enrollments linking them. The returned entities carry live bidirectional
// links, ready to feed the scheduler.
func (r *RosterRepository) LoadRoster(ctx context.Context) ([]*scheduling.Student, []*scheduling.Course, error) {
	students, err := r.ListStudents(ctx)
	if err != nil {
		return nil, nil, err
	}
	courses, err := r.ListCourses(ctx)
	if err != nil {
		return nil, nil, err
	}

	studentByID := make(map[scheduling.StudentID]*scheduling.Student, len(students))
	for _, s := range students {
		studentByID[s.ID()] = s
	}
	courseByID := make(map[scheduling.CourseID]*scheduling.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID()] = c
	}

	query := `
		SELECT id, student_id, course_id, status
		FROM enrollments
		ORDER BY created_at, id
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eid, studentID, courseID, status string
		if err := rows.Scan(&eid, &studentID, &courseID, &status); err != nil {
			return nil, nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		student, ok := studentByID[scheduling.StudentID(studentID)]
		if !ok {
			return nil, nil, shared.ErrUnknownStudent
		}
		course, ok := courseByID[scheduling.CourseID(courseID)]
		if !ok {
			return nil, nil, shared.ErrUnknownCourse
		}
		enrollment, err := scheduling.NewEnrollment(scheduling.EnrollmentID(eid), student, course)
		if err != nil {
			return nil, nil, fmt.Errorf("stored enrollment %s is invalid: %w", eid, err)
		}
		if err := enrollment.SetStatus(scheduling.EnrollmentStatus(status)); err != nil {
			return nil, nil, fmt.Errorf("stored enrollment %s has invalid status: %w", eid, err)
		}
	}

	return students, courses, rows.Err()
}
