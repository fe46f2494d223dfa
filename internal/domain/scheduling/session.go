package scheduling

import (
	"fmt"

	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXAM SESSION
// Атомарная единица расписания: (экзамен, окно, аудитория, состав студентов).
// ══════════════════════════════════════════════════════════════════════════════

// ExamSession - сессия экзамена. Максимальная вместимость выводится из
// аудитории в момент назначения и пересчитывается при её замене.
// Инвариант: |students| <= maxCapacity в любой момент времени.
type ExamSession struct {
	id   SessionID
	exam *Exam
	slot *TimeSlot
	room *Room

	students    []*Student
	maxCapacity int
}

// NewExamSession создаёт сессию. Окно и аудитория необязательны: сессия без
// аудитории имеет нулевую вместимость и не принимает студентов.
func NewExamSession(id SessionID, exam *Exam, slot *TimeSlot, room *Room) (*ExamSession, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("scheduling", "NewExamSession", shared.ErrInvalidID, "session id is required")
	}
	if exam == nil {
		return nil, shared.NewDomainError("scheduling", "NewExamSession", shared.ErrInvalidInput, "exam is required")
	}

	sess := &ExamSession{
		id:   id,
		exam: exam,
		slot: slot,
	}
	if room != nil {
		sess.room = room
		sess.maxCapacity = room.Capacity()
	}
	return sess, nil
}

// ID возвращает идентификатор сессии.
func (s *ExamSession) ID() SessionID {
	return s.id
}

// Exam возвращает экзамен сессии.
func (s *ExamSession) Exam() *Exam {
	return s.exam
}

// TimeSlot возвращает окно сессии (nil, если не назначено).
func (s *ExamSession) TimeSlot() *TimeSlot {
	return s.slot
}

// Room возвращает аудиторию сессии (nil, если не назначена).
func (s *ExamSession) Room() *Room {
	return s.room
}

// MaxCapacity возвращает текущую максимальную вместимость.
func (s *ExamSession) MaxCapacity() int {
	return s.maxCapacity
}

// AssignTimeSlot назначает окно сессии.
func (s *ExamSession) AssignTimeSlot(slot *TimeSlot) {
	s.slot = slot
}

// AssignRoom заменяет аудиторию и пересчитывает вместимость. Аудитория,
// не вмещающая уже назначенных студентов, отклоняется - инвариант вместимости
// не нарушается никогда.
func (s *ExamSession) AssignRoom(room *Room) error {
	if room == nil {
		if len(s.students) > 0 {
			return shared.NewDomainError("scheduling", "AssignRoom", shared.ErrInvalidState,
				"cannot remove room from session with assigned students")
		}
		s.room = nil
		s.maxCapacity = 0
		return nil
	}
	if room.Capacity() < len(s.students) {
		return shared.NewDomainError("scheduling", "AssignRoom", shared.ErrCapacityExceeded,
			fmt.Sprintf("room %s holds %d, session already has %d students", room.ID(), room.Capacity(), len(s.students)))
	}
	s.room = room
	s.maxCapacity = room.Capacity()
	return nil
}

// AssignedStudents возвращает независимую копию состава сессии.
func (s *ExamSession) AssignedStudents() []*Student {
	out := make([]*Student, len(s.students))
	copy(out, s.students)
	return out
}

// ContainsStudent проверяет, назначен ли студент на сессию.
func (s *ExamSession) ContainsStudent(st *Student) bool {
	if st == nil {
		return false
	}
	for _, existing := range s.students {
		if existing.Equal(st) {
			return true
		}
	}
	return false
}

// AssignStudent назначает студента на сессию. Возвращает false без побочных
// эффектов, если студент нулевой, уже назначен или вместимость исчерпана.
// При успехе обновляются обе стороны связи: состав сессии и список сессий
// студента.
func (s *ExamSession) AssignStudent(st *Student) bool {
	if st == nil {
		return false
	}
	if s.ContainsStudent(st) {
		return false
	}
	if len(s.students) >= s.maxCapacity {
		return false
	}

	s.students = append(s.students, st)
	st.attachSession(s)
	return true
}

// RemoveStudent снимает студента с сессии - симметричный разрыв той же
// двусторонней связи.
func (s *ExamSession) RemoveStudent(st *Student) {
	if st == nil {
		return
	}
	for i, existing := range s.students {
		if existing.Equal(st) {
			s.students = append(s.students[:i], s.students[i+1:]...)
			st.detachSession(s)
			return
		}
	}
}

// String возвращает строковое представление сессии для логирования.
func (s *ExamSession) String() string {
	room := "<no room>"
	if s.room != nil {
		room = s.room.ID().String()
	}
	return fmt.Sprintf("ExamSession{ID: %s, Exam: %s, Slot: %s, Room: %s, Students: %d/%d}",
		s.id, s.exam.ID(), s.slot, room, len(s.students), s.maxCapacity)
}
