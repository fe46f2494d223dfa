package constraint

import (
	"fmt"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
)

// MaxExamsPerDay проверяет дневную нагрузку студентов: не более threshold
// экзаменов на одну дату. Перебирает декартово произведение всех студентов
// расписания и всех различных дат его сессий.
type MaxExamsPerDay struct {
	threshold int
}

// NewMaxExamsPerDay создаёт правило дневной нагрузки. Неположительный порог
// заменяется значением по умолчанию.
func NewMaxExamsPerDay(threshold int) *MaxExamsPerDay {
	if threshold <= 0 {
		threshold = DefaultMaxExamsPerDay
	}
	return &MaxExamsPerDay{threshold: threshold}
}

// Name возвращает имя правила.
func (c *MaxExamsPerDay) Name() string {
	return "MaxExamsPerDayConstraint"
}

// Description возвращает описание правила.
func (c *MaxExamsPerDay) Description() string {
	return fmt.Sprintf("A student must not have more than %d exams on a single day", c.threshold)
}

// Threshold возвращает настроенный порог.
func (c *MaxExamsPerDay) Threshold() int {
	return c.threshold
}

// Validate формирует одно нарушение на каждую пару (студент, дата), где
// фактическое число экзаменов превышает порог.
func (c *MaxExamsPerDay) Validate(schedule *scheduling.Schedule) []string {
	if schedule == nil {
		return nil
	}

	var violations []string
	dates := schedule.Dates()
	for _, st := range schedule.Students() {
		for _, date := range dates {
			count := st.DailyExamCount(date)
			if count > c.threshold {
				violations = append(violations, fmt.Sprintf(
					"MAX EXAMS PER DAY VIOLATION: student %s (%s) has %d exams on %s (maximum allowed: %d)",
					st.ID(), st.FullName(), count, date, c.threshold))
			}
		}
	}
	return violations
}
