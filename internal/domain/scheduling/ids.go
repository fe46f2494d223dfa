package scheduling

import "strings"

// ══════════════════════════════════════════════════════════════════════════════
// ID VALUE OBJECTS
// Идентификаторы сущностей. Сравнение сущностей выполняется только по ним.
// ══════════════════════════════════════════════════════════════════════════════

// StudentID представляет уникальный идентификатор студента.
type StudentID string

// IsValid проверяет, что идентификатор непустой.
func (id StudentID) IsValid() bool {
	return strings.TrimSpace(string(id)) != ""
}

// String возвращает строковое представление.
func (id StudentID) String() string {
	return string(id)
}

// CourseID представляет уникальный идентификатор курса.
type CourseID string

// IsValid проверяет, что идентификатор непустой.
func (id CourseID) IsValid() bool {
	return strings.TrimSpace(string(id)) != ""
}

// String возвращает строковое представление.
func (id CourseID) String() string {
	return string(id)
}

// EnrollmentID представляет уникальный идентификатор записи на курс.
type EnrollmentID string

// IsValid проверяет, что идентификатор непустой.
func (id EnrollmentID) IsValid() bool {
	return strings.TrimSpace(string(id)) != ""
}

// String возвращает строковое представление.
func (id EnrollmentID) String() string {
	return string(id)
}

// ExamID представляет уникальный идентификатор экзамена.
type ExamID string

// IsValid проверяет, что идентификатор непустой.
func (id ExamID) IsValid() bool {
	return strings.TrimSpace(string(id)) != ""
}

// String возвращает строковое представление.
func (id ExamID) String() string {
	return string(id)
}

// SessionID представляет уникальный идентификатор экзаменационной сессии.
// Планировщик формирует его как "{examID}-S{n}".
type SessionID string

// IsValid проверяет, что идентификатор непустой.
func (id SessionID) IsValid() bool {
	return strings.TrimSpace(string(id)) != ""
}

// String возвращает строковое представление.
func (id SessionID) String() string {
	return string(id)
}

// RoomID представляет уникальный идентификатор аудитории.
type RoomID string

// IsValid проверяет, что идентификатор непустой.
func (id RoomID) IsValid() bool {
	return strings.TrimSpace(string(id)) != ""
}

// String возвращает строковое представление.
func (id RoomID) String() string {
	return string(id)
}
