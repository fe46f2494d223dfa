package scheduler

import (
	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
)

// ══════════════════════════════════════════════════════════════════════════════
// POOL SELECTION
// Both selectors return fresh copies, never references into the pools. Room
// seats are accounted per run: a room filled to capacity earlier in the run
// offers no seats to later sessions, but the pool objects stay pristine.
// ══════════════════════════════════════════════════════════════════════════════

// selectTimeSlot scans the pool in order and picks the first slot on whose
// date fewer than 20% of the remaining students are already at the daily
// limit. Falls back to the first slot in the pool; nil when the pool is empty.
func (s *Scheduler) selectTimeSlot(remaining []*scheduling.Student) *scheduling.TimeSlot {
	if len(s.timeSlots) == 0 {
		return nil
	}

	for _, slot := range s.timeSlots {
		busy := 0
		for _, st := range remaining {
			if st.DailyExamCount(slot.Date()) >= s.maxExamsPerDay {
				busy++
			}
		}
		if busy*5 < len(remaining) {
			return slot.Clone()
		}
	}
	return s.timeSlots[0].Clone()
}

// selectRoom picks the smallest room whose free seats still cover the
// required count (best fit, minimizing wasted capacity). When no room has
// enough seats, it falls back to the room with the most seats left, accepting
// overflow risk. Returns nil when the pool is empty. The returned copy
// carries the seats still free in this run, so the session capacity derived
// from it reflects what the room can actually take.
func (s *Scheduler) selectRoom(required int, usage map[scheduling.RoomID]int) *scheduling.Room {
	if len(s.rooms) == 0 {
		return nil
	}

	var bestFit, fallback *scheduling.Room
	bestFree, fallbackFree := 0, -1
	for _, room := range s.rooms {
		free := room.Capacity() - usage[room.ID()]
		if free < 0 {
			free = 0
		}
		if free > fallbackFree {
			fallback, fallbackFree = room, free
		}
		if free < required {
			continue
		}
		if bestFit == nil || free < bestFree {
			bestFit, bestFree = room, free
		}
	}

	chosen, free := fallback, fallbackFree
	if bestFit != nil {
		chosen, free = bestFit, bestFree
	}
	clone := chosen.Clone()
	if err := clone.SetCapacity(free); err != nil {
		return nil
	}
	return clone
}
