package constraint

import (
	"fmt"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
)

// RoomCapacity проверяет, что каждой сессии назначена аудитория и что число
// назначенных студентов не превышает её вместимость. Одна проверка на
// сессию, O(сессий).
type RoomCapacity struct{}

// NewRoomCapacity создаёт правило вместимости аудиторий.
func NewRoomCapacity() *RoomCapacity {
	return &RoomCapacity{}
}

// Name возвращает имя правила.
func (c *RoomCapacity) Name() string {
	return "RoomCapacityConstraint"
}

// Description возвращает описание правила.
func (c *RoomCapacity) Description() string {
	return "Each session must have a room, and its roster must not exceed the room capacity"
}

// Validate проверяет каждую сессию расписания. Сессии без аудитории
// считаются нарушением независимо от наличия временного окна.
func (c *RoomCapacity) Validate(schedule *scheduling.Schedule) []string {
	if schedule == nil {
		return nil
	}

	var violations []string
	for _, sess := range schedule.Sessions() {
		room := sess.Room()
		if room == nil {
			violations = append(violations, fmt.Sprintf(
				"ROOM CAPACITY VIOLATION: session %s has no room assigned", sess.ID()))
			continue
		}
		assigned := len(sess.AssignedStudents())
		if assigned > room.Capacity() {
			violations = append(violations, fmt.Sprintf(
				"ROOM CAPACITY VIOLATION: session %s has %d students in room %s with capacity %d (excess: %d)",
				sess.ID(), assigned, room.ID(), room.Capacity(), assigned-room.Capacity()))
		}
	}
	return violations
}
