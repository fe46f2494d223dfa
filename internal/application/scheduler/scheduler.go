// Package scheduler contains the greedy exam session generation engine.
package scheduler

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/examdesk/exam-scheduler/internal/domain/constraint"
	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
	"github.com/examdesk/exam-scheduler/internal/domain/shared"
	"github.com/examdesk/exam-scheduler/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULER
// One greedy forward pass: exams are split into sessions, each session gets a
// time slot, a room and a roster. Violations found afterwards are reported,
// never repaired. Shortfalls (no room, no slot, no placeable student) leave
// students unassigned and are logged as warnings, not returned as errors.
// ══════════════════════════════════════════════════════════════════════════════

// Config carries the scheduler dependencies and pools.
type Config struct {
	// Rooms is the pool of available rooms. Read-only during generation.
	Rooms []*scheduling.Room

	// TimeSlots is the pool of available time windows. Read-only during
	// generation. Pool order is the tie-break order.
	TimeSlots []*scheduling.TimeSlot

	// MaxExamsPerDay is the daily load threshold. It feeds the time slot
	// heuristic and the MaxExamsPerDay validation rule; the generated
	// schedule may still exceed it. Defaults to constraint.DefaultMaxExamsPerDay.
	MaxExamsPerDay int

	// Logger is the diagnostic sink for warnings and the validation report.
	Logger *logger.Logger

	// Events receives schedule lifecycle events. Optional.
	Events shared.EventPublisher
}

// Scheduler generates exam schedules from enrollment data.
// Safe to reuse across runs: pools are never mutated by generation.
type Scheduler struct {
	rooms          []*scheduling.Room
	timeSlots      []*scheduling.TimeSlot
	maxExamsPerDay int
	log            *logger.Logger
	events         shared.EventPublisher
}

// New creates a scheduler over the given pools.
func New(cfg Config) *Scheduler {
	if cfg.MaxExamsPerDay <= 0 {
		cfg.MaxExamsPerDay = constraint.DefaultMaxExamsPerDay
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	rooms := make([]*scheduling.Room, len(cfg.Rooms))
	copy(rooms, cfg.Rooms)
	slots := make([]*scheduling.TimeSlot, len(cfg.TimeSlots))
	copy(slots, cfg.TimeSlots)

	return &Scheduler{
		rooms:          rooms,
		timeSlots:      slots,
		maxExamsPerDay: cfg.MaxExamsPerDay,
		log:            cfg.Logger.With(logger.Component("scheduler")),
		events:         cfg.Events,
	}
}

// MaxExamsPerDay returns the configured daily load threshold.
func (s *Scheduler) MaxExamsPerDay() int {
	return s.maxExamsPerDay
}

// GenerateSchedule runs one greedy pass over the exams and returns the
// resulting schedule. The schedule is returned even when validation finds
// violations; violations are only logged and published.
func (s *Scheduler) GenerateSchedule(courses []*scheduling.Course, exams []*scheduling.Exam) *scheduling.Schedule {
	schedule := scheduling.NewSchedule(uuid.NewString())
	schedule.RegisterValidator(constraint.NewNoOverlap())
	schedule.RegisterValidator(constraint.NewMaxExamsPerDay(s.maxExamsPerDay))

	s.log.Info("schedule generation started",
		logger.ScheduleID(schedule.ID()),
		logger.Int("courses", len(courses)),
		logger.Int("exams", len(exams)))

	// Seats taken per room within this run. The pool objects themselves stay
	// untouched, so the scheduler can be reused for further runs.
	usage := make(map[scheduling.RoomID]int)

	totalUnassigned := 0
	for _, exam := range exams {
		if exam == nil {
			continue
		}
		totalUnassigned += s.scheduleExam(schedule, exam, usage)
	}

	violations := schedule.Validate()
	for _, v := range violations {
		s.log.Warn("constraint violation", logger.ScheduleID(schedule.ID()), logger.String("violation", v))
	}
	if len(violations) > 0 {
		s.publish(shared.NewViolationsDetectedEvent(schedule.ID(), violations))
	}

	s.log.Info("schedule generation finished",
		logger.ScheduleID(schedule.ID()),
		logger.Int("sessions", schedule.SessionCount()),
		logger.Violations(len(violations)),
		logger.Unassigned(totalUnassigned))
	s.publish(shared.NewScheduleGeneratedEvent(schedule.ID(), schedule.SessionCount(), len(exams), totalUnassigned))

	return schedule
}

// scheduleExam carves sessions out of the exam's enrolled students until
// everyone is placed or no further session can be formed. Returns the number
// of students left unassigned for this exam.
func (s *Scheduler) scheduleExam(schedule *scheduling.Schedule, exam *scheduling.Exam, usage map[scheduling.RoomID]int) int {
	remaining := exam.EnrolledStudents()
	if len(remaining) == 0 {
		return 0
	}

	sessionIndex := 1
	for len(remaining) > 0 {
		slot := s.selectTimeSlot(remaining)
		room := s.selectRoom(len(remaining), usage)
		if slot == nil || room == nil {
			s.log.Warn("no room or time slot available, students left unassigned",
				logger.ExamID(exam.ID().String()),
				logger.Unassigned(len(remaining)))
			break
		}

		sessionID := scheduling.SessionID(fmt.Sprintf("%s-S%d", exam.ID(), sessionIndex))
		session, err := scheduling.NewExamSession(sessionID, exam, slot, room)
		if err != nil {
			s.log.Error("session construction failed", logger.ExamID(exam.ID().String()), logger.Err(err))
			break
		}

		assigned := s.fillSession(session, &remaining)
		if assigned == 0 {
			// A zero-capacity session means the run has drained every room;
			// otherwise every remaining student clashes with this slot.
			msg := "no student can be placed without a clash, students left unassigned"
			if session.MaxCapacity() == 0 {
				msg = "no seats left in any room, students left unassigned"
			}
			s.log.Warn(msg,
				logger.ExamID(exam.ID().String()),
				logger.SessionID(sessionID.String()),
				logger.Unassigned(len(remaining)))
			break
		}

		exam.AddSession(session)
		schedule.AddSession(session)
		usage[room.ID()] += assigned
		s.publish(shared.NewSessionCreatedEvent(
			sessionID.String(), exam.ID().String(), room.ID().String(),
			slot.Date().String(), slot.Window(), assigned))
		sessionIndex++
	}

	for _, st := range remaining {
		s.publish(shared.NewStudentUnassignedEvent(st.ID().String(), exam.ID().String(), "no feasible session"))
	}
	return len(remaining)
}

// fillSession packs students from the remaining list into the session in
// first-come-first-served order, skipping students whose existing sessions
// would clash with this one. Placed students are removed from the list.
func (s *Scheduler) fillSession(session *scheduling.ExamSession, remaining *[]*scheduling.Student) int {
	assigned := 0
	var leftover []*scheduling.Student
	for i, st := range *remaining {
		if assigned >= session.MaxCapacity() {
			leftover = append(leftover, (*remaining)[i:]...)
			break
		}
		if st.HasExamOverlap(session) || !session.AssignStudent(st) {
			leftover = append(leftover, st)
			continue
		}
		assigned++
	}
	*remaining = leftover
	return assigned
}

func (s *Scheduler) publish(event shared.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event); err != nil {
		s.log.Warn("event publish failed", logger.String("event", string(event.EventType())), logger.Err(err))
	}
}
