package scheduling

import (
	"fmt"

	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROOM
// ══════════════════════════════════════════════════════════════════════════════

// Room представляет аудиторию с неотрицательной вместимостью.
type Room struct {
	id       RoomID
	name     string
	capacity int
}

// NewRoom создаёт аудиторию с валидацией. Отрицательная вместимость - ошибка
// программиста или данных, отклоняется сразу.
func NewRoom(id RoomID, name string, capacity int) (*Room, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("scheduling", "NewRoom", shared.ErrInvalidID, "room id is required")
	}
	if capacity < 0 {
		return nil, shared.ErrNegativeCapacity
	}
	return &Room{id: id, name: name, capacity: capacity}, nil
}

// ID возвращает идентификатор аудитории.
func (r *Room) ID() RoomID {
	return r.id
}

// Name возвращает название аудитории.
func (r *Room) Name() string {
	return r.name
}

// Capacity возвращает вместимость.
func (r *Room) Capacity() int {
	return r.capacity
}

// SetCapacity изменяет вместимость. Отрицательное значение отклоняется.
func (r *Room) SetCapacity(capacity int) error {
	if capacity < 0 {
		return shared.ErrNegativeCapacity
	}
	r.capacity = capacity
	return nil
}

// Equal сравнивает аудитории по идентификатору.
func (r *Room) Equal(other *Room) bool {
	if r == nil || other == nil {
		return false
	}
	return r.id == other.id
}

// Clone создаёт независимую копию аудитории.
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

// String возвращает строковое представление для логирования.
func (r *Room) String() string {
	return fmt.Sprintf("Room{ID: %s, Name: %s, Capacity: %d}", r.id, r.name, r.capacity)
}
