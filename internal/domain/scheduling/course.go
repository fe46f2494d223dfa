package scheduling

import (
	"fmt"
	"strings"

	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COURSE
// ══════════════════════════════════════════════════════════════════════════════

// Course - курс, на который записываются студенты и к которому привязываются
// экзамены. Владеет списком записей; множество записанных студентов выводится
// из него.
type Course struct {
	id      CourseID
	code    string
	name    string
	credits int

	enrollments []*Enrollment
}

// NewCourse создаёт курс с валидацией.
func NewCourse(id CourseID, code, name string, credits int) (*Course, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("scheduling", "NewCourse", shared.ErrInvalidID, "course id is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("scheduling", "NewCourse", shared.ErrEmptyValue, "course name is required")
	}
	if credits < 0 {
		return nil, shared.NewDomainError("scheduling", "NewCourse", shared.ErrNegativeValue, "credits cannot be negative")
	}
	return &Course{
		id:      id,
		code:    strings.TrimSpace(code),
		name:    strings.TrimSpace(name),
		credits: credits,
	}, nil
}

// ID возвращает идентификатор курса.
func (c *Course) ID() CourseID {
	return c.id
}

// Code возвращает код курса (например, "CS101").
func (c *Course) Code() string {
	return c.code
}

// Name возвращает название курса.
func (c *Course) Name() string {
	return c.name
}

// Credits возвращает число кредитов.
func (c *Course) Credits() int {
	return c.credits
}

// Equal сравнивает курсы по идентификатору.
func (c *Course) Equal(other *Course) bool {
	if c == nil || other == nil {
		return false
	}
	return c.id == other.id
}

// Enrollments возвращает независимую копию списка записей.
func (c *Course) Enrollments() []*Enrollment {
	out := make([]*Enrollment, len(c.enrollments))
	copy(out, c.enrollments)
	return out
}

// EnrolledStudents возвращает студентов курса, выведенных из записей,
// в порядке записи и без дубликатов. Статус записи не фильтруется:
// состав участников экзамена определяет факт записи.
func (c *Course) EnrolledStudents() []*Student {
	seen := make(map[StudentID]bool, len(c.enrollments))
	out := make([]*Student, 0, len(c.enrollments))
	for _, e := range c.enrollments {
		st := e.Student()
		if st == nil || seen[st.ID()] {
			continue
		}
		seen[st.ID()] = true
		out = append(out, st)
	}
	return out
}

// ActiveStudents возвращает студентов только с активными записями.
func (c *Course) ActiveStudents() []*Student {
	seen := make(map[StudentID]bool, len(c.enrollments))
	out := make([]*Student, 0, len(c.enrollments))
	for _, e := range c.enrollments {
		st := e.Student()
		if st == nil || !e.IsActive() || seen[st.ID()] {
			continue
		}
		seen[st.ID()] = true
		out = append(out, st)
	}
	return out
}

// attachEnrollment регистрирует запись у курса. Вызывается только из
// NewEnrollment - парно с регистрацией у студента.
func (c *Course) attachEnrollment(e *Enrollment) {
	c.enrollments = append(c.enrollments, e)
}

// String возвращает строковое представление курса для логирования.
func (c *Course) String() string {
	return fmt.Sprintf("Course{ID: %s, Code: %s, Enrollments: %d}", c.id, c.code, len(c.enrollments))
}
