// Package constraint содержит правила проверки расписания экзаменов.
// Каждое правило реализует scheduling.Validator: читает расписание и
// возвращает список человекочитаемых описаний нарушений. Правила чистые:
// расписание не изменяется, повторный вызов даёт идентичный результат.
package constraint

import (
	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
)

// ══════════════════════════════════════════════════════════════════════════════
// STANDARD RULE SET
// ══════════════════════════════════════════════════════════════════════════════

// DefaultMaxExamsPerDay - порог дневной нагрузки по умолчанию.
const DefaultMaxExamsPerDay = 2

// All возвращает полный стандартный набор правил в порядке проверки.
func All(maxExamsPerDay int) []scheduling.Validator {
	return []scheduling.Validator{
		NewRoomCapacity(),
		NewMaxExamsPerDay(maxExamsPerDay),
		NewNoOverlap(),
		NewNoConsecutiveExams(),
	}
}
