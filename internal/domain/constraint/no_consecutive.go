package constraint

import (
	"fmt"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
)

// NoConsecutiveExams проверяет, что у студента нет двух экзаменов в один
// день "встык": окончание одного совпадает с началом другого. Такие окна
// не пересекаются и проходят NoOverlap, но оставляют студента без перерыва.
type NoConsecutiveExams struct{}

// NewNoConsecutiveExams создаёт правило отсутствия экзаменов встык.
func NewNoConsecutiveExams() *NoConsecutiveExams {
	return &NoConsecutiveExams{}
}

// Name возвращает имя правила.
func (c *NoConsecutiveExams) Name() string {
	return "NoConsecutiveExamsConstraint"
}

// Description возвращает описание правила.
func (c *NoConsecutiveExams) Description() string {
	return "A student must not have back-to-back exam sessions with no break in between"
}

// Validate формирует одно нарушение на каждую пару сессий одного студента,
// идущих встык в один день.
func (c *NoConsecutiveExams) Validate(schedule *scheduling.Schedule) []string {
	if schedule == nil {
		return nil
	}

	var violations []string
	for _, st := range schedule.Students() {
		sessions := timedSessions(schedule.SessionsForStudent(st))
		for i := 0; i < len(sessions); i++ {
			for j := i + 1; j < len(sessions); j++ {
				a, b := sessions[i], sessions[j]
				if !a.TimeSlot().Consecutive(b.TimeSlot()) {
					continue
				}
				violations = append(violations, fmt.Sprintf(
					"NO CONSECUTIVE EXAMS VIOLATION: student %s (%s) has back-to-back sessions %s (%s, %s) and %s (%s, %s) on %s",
					st.ID(), st.FullName(),
					a.ID(), a.Exam().Name(), a.TimeSlot().Window(),
					b.ID(), b.Exam().Name(), b.TimeSlot().Window(),
					a.TimeSlot().Date()))
			}
		}
	}
	return violations
}
