package scheduling

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Gender определяет пол студента (необязательное поле импорта).
type Gender string

const (
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderOther       Gender = "other"
	GenderUnspecified Gender = ""
)

// IsValid проверяет, что значение корректно.
func (g Gender) IsValid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderOther, GenderUnspecified:
		return true
	default:
		return false
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Простая проверка адреса почты, без претензии на RFC 5322.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Student - студент, записанный на курсы и назначаемый на сессии.
// Хранит обратные ссылки на свои записи и сессии; обе стороны связи
// обновляются только парными операциями.
type Student struct {
	id        StudentID
	firstName string
	lastName  string
	email     string
	gender    Gender

	// enrollments - записи студента на курсы (владеет Enrollment).
	enrollments []*Enrollment

	// sessions - сессии, на которые студент назначен (обратные ссылки,
	// владеет ExamSession). Дубликатов не содержит.
	sessions []*ExamSession
}

// NewStudentParams содержит параметры для создания студента.
type NewStudentParams struct {
	ID        StudentID
	FirstName string
	LastName  string
	Email     string
	Gender    Gender
}

// NewStudent создаёт студента с валидацией всех полей.
func NewStudent(params NewStudentParams) (*Student, error) {
	if !params.ID.IsValid() {
		return nil, shared.NewDomainError("scheduling", "NewStudent", shared.ErrInvalidID, "student id is required")
	}

	firstName := strings.TrimSpace(params.FirstName)
	lastName := strings.TrimSpace(params.LastName)
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("scheduling", "NewStudent", shared.ErrEmptyValue, "student name is required")
	}

	email := strings.TrimSpace(params.Email)
	if email != "" && !emailRegex.MatchString(email) {
		return nil, shared.NewDomainError("scheduling", "NewStudent", shared.ErrInvalidFormat, "invalid email address")
	}

	if !params.Gender.IsValid() {
		return nil, shared.NewDomainError("scheduling", "NewStudent", shared.ErrInvalidInput, "invalid gender")
	}

	return &Student{
		id:        params.ID,
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		gender:    params.Gender,
	}, nil
}

// ID возвращает идентификатор студента.
func (s *Student) ID() StudentID {
	return s.id
}

// FirstName возвращает имя.
func (s *Student) FirstName() string {
	return s.firstName
}

// LastName возвращает фамилию.
func (s *Student) LastName() string {
	return s.lastName
}

// FullName возвращает полное имя.
func (s *Student) FullName() string {
	return s.firstName + " " + s.lastName
}

// Email возвращает адрес почты.
func (s *Student) Email() string {
	return s.email
}

// Gender возвращает пол.
func (s *Student) Gender() Gender {
	return s.gender
}

// Equal сравнивает студентов по идентификатору.
func (s *Student) Equal(other *Student) bool {
	if s == nil || other == nil {
		return false
	}
	return s.id == other.id
}

// ─────────────────────────────────────────────────────────────────────────────
// Enrollments
// ─────────────────────────────────────────────────────────────────────────────

// Enrollments возвращает независимую копию списка записей. Изменение
// возвращаемого среза не влияет на внутреннее состояние.
func (s *Student) Enrollments() []*Enrollment {
	out := make([]*Enrollment, len(s.enrollments))
	copy(out, s.enrollments)
	return out
}

// attachEnrollment регистрирует запись у студента. Вызывается только из
// NewEnrollment, чтобы обе стороны связи менялись одной операцией.
func (s *Student) attachEnrollment(e *Enrollment) {
	s.enrollments = append(s.enrollments, e)
}

// ─────────────────────────────────────────────────────────────────────────────
// Assigned sessions (derived queries)
// ─────────────────────────────────────────────────────────────────────────────

// AssignedSessions возвращает независимую копию списка назначенных сессий.
func (s *Student) AssignedSessions() []*ExamSession {
	out := make([]*ExamSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// DailyExamCount возвращает число назначенных сессий, окно которых приходится
// на указанную дату. Для нулевой даты возвращает 0.
func (s *Student) DailyExamCount(date Date) int {
	if date.IsZero() {
		return 0
	}
	count := 0
	for _, sess := range s.sessions {
		slot := sess.TimeSlot()
		if slot != nil && slot.Date().Equal(date) {
			count++
		}
	}
	return count
}

// HasExamOverlap проверяет, пересекается ли окно кандидата с окном любой из
// уже назначенных сессий. false, если у кандидата нет окна.
func (s *Student) HasExamOverlap(candidate *ExamSession) bool {
	if candidate == nil || candidate.TimeSlot() == nil {
		return false
	}
	for _, sess := range s.sessions {
		if sess.TimeSlot().Overlaps(candidate.TimeSlot()) {
			return true
		}
	}
	return false
}

// hasSession проверяет, назначен ли студент на сессию.
func (s *Student) hasSession(sess *ExamSession) bool {
	for _, existing := range s.sessions {
		if existing == sess {
			return true
		}
	}
	return false
}

// attachSession добавляет обратную ссылку на сессию. Вызывается только из
// ExamSession.AssignStudent - парно с изменением состава сессии.
func (s *Student) attachSession(sess *ExamSession) {
	if s.hasSession(sess) {
		return
	}
	s.sessions = append(s.sessions, sess)
}

// detachSession убирает обратную ссылку на сессию. Вызывается только из
// ExamSession.RemoveStudent.
func (s *Student) detachSession(sess *ExamSession) {
	for i, existing := range s.sessions {
		if existing == sess {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return
		}
	}
}

// String возвращает строковое представление студента для логирования.
func (s *Student) String() string {
	return fmt.Sprintf("Student{ID: %s, Name: %s, Sessions: %d}", s.id, s.FullName(), len(s.sessions))
}
