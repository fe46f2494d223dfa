package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXAM
// ══════════════════════════════════════════════════════════════════════════════

// Exam - экзамен по ровно одному курсу. Участники выводятся транзитивно через
// курс; владеет списком сессий, на которые был разбит планировщиком.
type Exam struct {
	id       ExamID
	course   *Course
	name     string
	duration time.Duration

	sessions []*ExamSession
}

// NewExam создаёт экзамен с валидацией.
func NewExam(id ExamID, course *Course, name string, duration time.Duration) (*Exam, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("scheduling", "NewExam", shared.ErrInvalidID, "exam id is required")
	}
	if course == nil {
		return nil, shared.NewDomainError("scheduling", "NewExam", shared.ErrInvalidInput, "course is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("scheduling", "NewExam", shared.ErrEmptyValue, "exam name is required")
	}
	if duration <= 0 {
		return nil, shared.NewDomainError("scheduling", "NewExam", shared.ErrValueOutOfRange, "exam duration must be positive")
	}
	return &Exam{
		id:       id,
		course:   course,
		name:     strings.TrimSpace(name),
		duration: duration,
	}, nil
}

// ID возвращает идентификатор экзамена.
func (e *Exam) ID() ExamID {
	return e.id
}

// Course возвращает курс экзамена.
func (e *Exam) Course() *Course {
	return e.course
}

// Name возвращает название экзамена.
func (e *Exam) Name() string {
	return e.name
}

// Duration возвращает длительность экзамена.
func (e *Exam) Duration() time.Duration {
	return e.duration
}

// EnrolledStudents возвращает участников экзамена - студентов курса.
func (e *Exam) EnrolledStudents() []*Student {
	return e.course.EnrolledStudents()
}

// Sessions возвращает независимую копию списка сессий экзамена.
func (e *Exam) Sessions() []*ExamSession {
	out := make([]*ExamSession, len(e.sessions))
	copy(out, e.sessions)
	return out
}

// AddSession регистрирует сессию у экзамена. Чужие и повторные сессии
// отклоняются без побочных эффектов.
func (e *Exam) AddSession(sess *ExamSession) bool {
	if sess == nil || sess.Exam() != e {
		return false
	}
	for _, existing := range e.sessions {
		if existing == sess {
			return false
		}
	}
	e.sessions = append(e.sessions, sess)
	return true
}

// Equal сравнивает экзамены по идентификатору.
func (e *Exam) Equal(other *Exam) bool {
	if e == nil || other == nil {
		return false
	}
	return e.id == other.id
}

// String возвращает строковое представление экзамена для логирования.
func (e *Exam) String() string {
	return fmt.Sprintf("Exam{ID: %s, Name: %s, Course: %s, Sessions: %d}",
		e.id, e.name, e.course.ID(), len(e.sessions))
}
