package scheduling

import (
	"fmt"
	"sort"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE
// Единица валидации: набор сессий одного прогона планировщика.
// ══════════════════════════════════════════════════════════════════════════════

// Validator - полиморфное правило проверки расписания. Правила читают
// расписание и возвращают упорядоченный список описаний нарушений
// (пустой, если нарушений нет).
type Validator interface {
	// Name возвращает короткое имя правила.
	Name() string

	// Description возвращает описание правила.
	Description() string

	// Validate проверяет расписание. Для nil-расписания возвращает пустой
	// список: отсутствие расписания - не нарушение, а отсутствие предмета
	// проверки.
	Validate(schedule *Schedule) []string
}

// Schedule владеет набором сессий (без дубликатов) и списком
// зарегистрированных правил для последующей проверки.
type Schedule struct {
	id         string
	sessions   []*ExamSession
	validators []Validator
	createdAt  time.Time
}

// NewSchedule создаёт пустое расписание.
func NewSchedule(id string) *Schedule {
	return &Schedule{
		id:        id,
		createdAt: time.Now().UTC(),
	}
}

// ID возвращает идентификатор прогона.
func (s *Schedule) ID() string {
	return s.id
}

// CreatedAt возвращает время создания расписания.
func (s *Schedule) CreatedAt() time.Time {
	return s.createdAt
}

// AddSession добавляет сессию. Нулевые и повторные сессии отклоняются.
func (s *Schedule) AddSession(sess *ExamSession) bool {
	if sess == nil {
		return false
	}
	for _, existing := range s.sessions {
		if existing == sess {
			return false
		}
	}
	s.sessions = append(s.sessions, sess)
	return true
}

// Sessions возвращает независимую копию списка сессий.
func (s *Schedule) Sessions() []*ExamSession {
	out := make([]*ExamSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// SessionCount возвращает число сессий.
func (s *Schedule) SessionCount() int {
	return len(s.sessions)
}

// RegisterValidator регистрирует правило проверки.
func (s *Schedule) RegisterValidator(v Validator) {
	if v == nil {
		return
	}
	s.validators = append(s.validators, v)
}

// Validators возвращает независимую копию списка правил.
func (s *Schedule) Validators() []Validator {
	out := make([]Validator, len(s.validators))
	copy(out, s.validators)
	return out
}

// Validate прогоняет все зарегистрированные правила в порядке регистрации и
// возвращает объединённый список нарушений. Повторный вызов без изменения
// расписания даёт идентичный список.
func (s *Schedule) Validate() []string {
	var violations []string
	for _, v := range s.validators {
		violations = append(violations, v.Validate(s)...)
	}
	return violations
}

// Students возвращает всех студентов, встречающихся в сессиях расписания,
// в порядке первого появления и без дубликатов.
func (s *Schedule) Students() []*Student {
	seen := make(map[StudentID]bool)
	var out []*Student
	for _, sess := range s.sessions {
		for _, st := range sess.AssignedStudents() {
			if seen[st.ID()] {
				continue
			}
			seen[st.ID()] = true
			out = append(out, st)
		}
	}
	return out
}

// Dates возвращает все даты, встречающиеся в окнах сессий, отсортированные
// по возрастанию и без дубликатов. Сессии без окна пропускаются.
func (s *Schedule) Dates() []Date {
	seen := make(map[Date]bool)
	var out []Date
	for _, sess := range s.sessions {
		slot := sess.TimeSlot()
		if slot == nil || seen[slot.Date()] {
			continue
		}
		seen[slot.Date()] = true
		out = append(out, slot.Date())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// SessionsForStudent возвращает сессии расписания, на которые назначен
// студент, в порядке следования сессий в расписании.
func (s *Schedule) SessionsForStudent(st *Student) []*ExamSession {
	var out []*ExamSession
	for _, sess := range s.sessions {
		if sess.ContainsStudent(st) {
			out = append(out, sess)
		}
	}
	return out
}

// String возвращает строковое представление расписания для логирования.
func (s *Schedule) String() string {
	return fmt.Sprintf("Schedule{ID: %s, Sessions: %d, Validators: %d}",
		s.id, len(s.sessions), len(s.validators))
}
