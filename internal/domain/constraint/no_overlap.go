package constraint

import (
	"fmt"
	"sort"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
)

// NoOverlap проверяет, что ни у одного студента нет двух сессий с
// пересекающимися временными окнами. Сессии без окна исключаются из
// проверки. Сортировка по началу окна - задел под ранний выход, сама
// проверка сравнивает все пары.
type NoOverlap struct{}

// NewNoOverlap создаёт правило отсутствия пересечений.
func NewNoOverlap() *NoOverlap {
	return &NoOverlap{}
}

// Name возвращает имя правила.
func (c *NoOverlap) Name() string {
	return "NoOverlapConstraint"
}

// Description возвращает описание правила.
func (c *NoOverlap) Description() string {
	return "A student must not have two exam sessions with overlapping time windows"
}

// Validate формирует одно нарушение на каждую пересекающуюся пару сессий
// одного студента.
func (c *NoOverlap) Validate(schedule *scheduling.Schedule) []string {
	if schedule == nil {
		return nil
	}

	var violations []string
	for _, st := range schedule.Students() {
		sessions := timedSessions(schedule.SessionsForStudent(st))
		sort.SliceStable(sessions, func(i, j int) bool {
			si, sj := sessions[i].TimeSlot(), sessions[j].TimeSlot()
			if !si.Date().Equal(sj.Date()) {
				return si.Date().Before(sj.Date())
			}
			return si.Start() < sj.Start()
		})
		for i := 0; i < len(sessions); i++ {
			for j := i + 1; j < len(sessions); j++ {
				a, b := sessions[i], sessions[j]
				if !a.TimeSlot().Overlaps(b.TimeSlot()) {
					continue
				}
				violations = append(violations, fmt.Sprintf(
					"NO OVERLAP VIOLATION: student %s (%s) has overlapping sessions %s (%s, %s) and %s (%s, %s)",
					st.ID(), st.FullName(),
					a.ID(), a.Exam().Name(), a.TimeSlot().Window(),
					b.ID(), b.Exam().Name(), b.TimeSlot().Window()))
			}
		}
	}
	return violations
}

// timedSessions отбирает сессии с назначенным временным окном.
func timedSessions(sessions []*scheduling.ExamSession) []*scheduling.ExamSession {
	out := make([]*scheduling.ExamSession, 0, len(sessions))
	for _, sess := range sessions {
		if sess.TimeSlot() != nil {
			out = append(out, sess)
		}
	}
	return out
}
