// Package scheduling содержит доменную модель расписания экзаменов.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package scheduling

import (
	"fmt"
	"time"

	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS: DATE & TIME OF DAY
// ══════════════════════════════════════════════════════════════════════════════

// Date представляет календарный день без времени и часового пояса.
// Нулевое значение означает отсутствие даты.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate создаёт дату из компонентов.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate разбирает дату в формате ISO-8601 (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, shared.WrapError("scheduling", "ParseDate", shared.ErrInvalidFormat, "expected YYYY-MM-DD", err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// IsZero проверяет, что дата отсутствует.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Equal сравнивает две даты.
func (d Date) Equal(other Date) bool {
	return d == other
}

// Before проверяет, что дата d раньше other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String возвращает дату в формате ISO-8601.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TimeOfDay представляет время суток в минутах от полуночи [0, 1440].
// Значение 1440 допустимо только как конец интервала.
type TimeOfDay int

const minutesPerDay = 24 * 60

// NewTimeOfDay создаёт время суток из часов и минут.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, shared.ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay разбирает время в формате HH:MM.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, shared.WrapError("scheduling", "ParseTimeOfDay", shared.ErrInvalidFormat, "expected HH:MM", err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// IsValid проверяет, что время в допустимом диапазоне.
func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t <= minutesPerDay
}

// Hour возвращает часовую составляющую.
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute возвращает минутную составляющую.
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Add возвращает время, сдвинутое на указанную длительность.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d.Minutes())
}

// String возвращает время в формате HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// ══════════════════════════════════════════════════════════════════════════════
// TIME SLOT
// ══════════════════════════════════════════════════════════════════════════════

// TimeSlot представляет окно (дата, начало, конец) для проведения сессии.
// Интервал полуоткрытый: [start, end).
type TimeSlot struct {
	date  Date
	start TimeOfDay
	end   TimeOfDay
}

// NewTimeSlot создаёт временное окно с валидацией.
func NewTimeSlot(date Date, start, end TimeOfDay) (*TimeSlot, error) {
	if date.IsZero() {
		return nil, shared.ErrInvalidDate
	}
	if !start.IsValid() || !end.IsValid() || end <= start {
		return nil, shared.ErrInvalidTimeSlot
	}
	return &TimeSlot{date: date, start: start, end: end}, nil
}

// Date возвращает дату окна.
func (ts *TimeSlot) Date() Date {
	return ts.date
}

// Start возвращает время начала.
func (ts *TimeSlot) Start() TimeOfDay {
	return ts.start
}

// End возвращает время конца.
func (ts *TimeSlot) End() TimeOfDay {
	return ts.end
}

// Duration возвращает длительность окна.
func (ts *TimeSlot) Duration() time.Duration {
	return time.Duration(ts.end-ts.start) * time.Minute
}

// Overlaps проверяет пересечение двух окон. Симметрично; false при разных
// датах и при отсутствии любого из аргументов. Касание границ (end1 == start2)
// пересечением не считается.
func (ts *TimeSlot) Overlaps(other *TimeSlot) bool {
	if ts == nil || other == nil {
		return false
	}
	if !ts.date.Equal(other.date) {
		return false
	}
	return ts.start < other.end && other.start < ts.end
}

// Consecutive проверяет, что окна идут встык: одна дата и конец одного
// совпадает с началом другого. Отдельное от пересечения условие.
func (ts *TimeSlot) Consecutive(other *TimeSlot) bool {
	if ts == nil || other == nil {
		return false
	}
	if !ts.date.Equal(other.date) {
		return false
	}
	return ts.end == other.start || other.end == ts.start
}

// Clone создаёт независимую копию окна.
func (ts *TimeSlot) Clone() *TimeSlot {
	if ts == nil {
		return nil
	}
	clone := *ts
	return &clone
}

// Window возвращает строку вида "09:00-11:00" для сообщений о нарушениях.
func (ts *TimeSlot) Window() string {
	return fmt.Sprintf("%s-%s", ts.start, ts.end)
}

// String возвращает строковое представление окна для логирования.
func (ts *TimeSlot) String() string {
	if ts == nil {
		return "<no slot>"
	}
	return fmt.Sprintf("%s %s", ts.date, ts.Window())
}
