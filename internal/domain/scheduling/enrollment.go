package scheduling

import (
	"fmt"

	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLLMENT
// Связь многие-ко-многим между студентом и курсом.
// ══════════════════════════════════════════════════════════════════════════════

// EnrollmentStatus определяет статус записи на курс.
type EnrollmentStatus string

const (
	// EnrollmentActive - студент учится на курсе.
	EnrollmentActive EnrollmentStatus = "ACTIVE"
	// EnrollmentDropped - студент бросил курс.
	EnrollmentDropped EnrollmentStatus = "DROPPED"
	// EnrollmentCompleted - студент закончил курс.
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
)

// IsValid проверяет, что статус корректен.
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentActive, EnrollmentDropped, EnrollmentCompleted:
		return true
	default:
		return false
	}
}

// Enrollment - запись студента на курс. При создании регистрируется на обеих
// сторонах: любая запись, достижимая от студента, достижима и от курса,
// и наоборот (структурный инвариант).
type Enrollment struct {
	id      EnrollmentID
	student *Student
	course  *Course
	status  EnrollmentStatus
}

// NewEnrollment создаёт запись и регистрирует её у студента и курса одной
// операцией. Нулевые стороны отклоняются.
func NewEnrollment(id EnrollmentID, student *Student, course *Course) (*Enrollment, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("scheduling", "NewEnrollment", shared.ErrInvalidID, "enrollment id is required")
	}
	if student == nil {
		return nil, shared.NewDomainError("scheduling", "NewEnrollment", shared.ErrInvalidInput, "student is required")
	}
	if course == nil {
		return nil, shared.NewDomainError("scheduling", "NewEnrollment", shared.ErrInvalidInput, "course is required")
	}

	e := &Enrollment{
		id:      id,
		student: student,
		course:  course,
		status:  EnrollmentActive,
	}

	// Обе стороны связи обновляются в одном логическом шаге.
	student.attachEnrollment(e)
	course.attachEnrollment(e)

	return e, nil
}

// ID возвращает идентификатор записи.
func (e *Enrollment) ID() EnrollmentID {
	return e.id
}

// Student возвращает студента.
func (e *Enrollment) Student() *Student {
	return e.student
}

// Course возвращает курс.
func (e *Enrollment) Course() *Course {
	return e.course
}

// Status возвращает статус записи.
func (e *Enrollment) Status() EnrollmentStatus {
	return e.status
}

// SetStatus изменяет статус записи.
func (e *Enrollment) SetStatus(status EnrollmentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("scheduling", "SetStatus", shared.ErrInvalidInput, "invalid enrollment status")
	}
	e.status = status
	return nil
}

// IsActive возвращает true, если запись активна.
func (e *Enrollment) IsActive() bool {
	return e.status == EnrollmentActive
}

// String возвращает строковое представление записи для логирования.
func (e *Enrollment) String() string {
	return fmt.Sprintf("Enrollment{ID: %s, Student: %s, Course: %s, Status: %s}",
		e.id, e.student.ID(), e.course.ID(), e.status)
}
