// Package shared contains common domain types, errors and events that are used
// across all domain packages.
package shared

import (
	"encoding/json"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event marks something significant that happened
// during a scheduling run or around it.
const (
	// Schedule events
	EventScheduleGenerated  EventType = "schedule.generated"
	EventSessionCreated     EventType = "schedule.session_created"
	EventStudentUnassigned  EventType = "schedule.student_unassigned"
	EventViolationsDetected EventType = "schedule.violations_detected"

	// System events
	EventImportCompleted EventType = "system.import_completed"
	EventExportCompleted EventType = "system.export_completed"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
	Version     int       `json:"version"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Schedule Events
// ═══════════════════════════════════════════════════════════════════════════

// ScheduleGeneratedEvent is emitted when a scheduling run completes.
type ScheduleGeneratedEvent struct {
	BaseEvent
	ScheduleID   string `json:"schedule_id"`
	SessionCount int    `json:"session_count"`
	ExamCount    int    `json:"exam_count"`
	Unassigned   int    `json:"unassigned"`
}

// Payload implements Event interface.
func (e ScheduleGeneratedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"schedule_id":   e.ScheduleID,
		"session_count": e.SessionCount,
		"exam_count":    e.ExamCount,
		"unassigned":    e.Unassigned,
	}
}

// NewScheduleGeneratedEvent creates a new ScheduleGeneratedEvent.
func NewScheduleGeneratedEvent(scheduleID string, sessionCount, examCount, unassigned int) ScheduleGeneratedEvent {
	return ScheduleGeneratedEvent{
		BaseEvent:    NewBaseEvent(EventScheduleGenerated, scheduleID),
		ScheduleID:   scheduleID,
		SessionCount: sessionCount,
		ExamCount:    examCount,
		Unassigned:   unassigned,
	}
}

// SessionCreatedEvent is emitted for every session the scheduler carves out.
type SessionCreatedEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
	ExamID    string `json:"exam_id"`
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	Window    string `json:"window"`
	Assigned  int    `json:"assigned"`
}

// Payload implements Event interface.
func (e SessionCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id": e.SessionID,
		"exam_id":    e.ExamID,
		"room_id":    e.RoomID,
		"date":       e.Date,
		"window":     e.Window,
		"assigned":   e.Assigned,
	}
}

// NewSessionCreatedEvent creates a new SessionCreatedEvent.
func NewSessionCreatedEvent(sessionID, examID, roomID, date, window string, assigned int) SessionCreatedEvent {
	return SessionCreatedEvent{
		BaseEvent: NewBaseEvent(EventSessionCreated, sessionID),
		SessionID: sessionID,
		ExamID:    examID,
		RoomID:    roomID,
		Date:      date,
		Window:    window,
		Assigned:  assigned,
	}
}

// StudentUnassignedEvent is emitted when generation leaves a student without a
// session for an exam (shortfall, recovered locally).
type StudentUnassignedEvent struct {
	BaseEvent
	StudentID string `json:"student_id"`
	ExamID    string `json:"exam_id"`
	Reason    string `json:"reason"`
}

// Payload implements Event interface.
func (e StudentUnassignedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"exam_id":    e.ExamID,
		"reason":     e.Reason,
	}
}

// NewStudentUnassignedEvent creates a new StudentUnassignedEvent.
func NewStudentUnassignedEvent(studentID, examID, reason string) StudentUnassignedEvent {
	return StudentUnassignedEvent{
		BaseEvent: NewBaseEvent(EventStudentUnassigned, studentID),
		StudentID: studentID,
		ExamID:    examID,
		Reason:    reason,
	}
}

// ViolationsDetectedEvent is emitted when post-generation validation finds
// violations. Violations are data, not errors; this event only reports them.
type ViolationsDetectedEvent struct {
	BaseEvent
	ScheduleID string   `json:"schedule_id"`
	Violations []string `json:"violations"`
}

// Payload implements Event interface.
func (e ViolationsDetectedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"schedule_id": e.ScheduleID,
		"violations":  e.Violations,
		"count":       len(e.Violations),
	}
}

// NewViolationsDetectedEvent creates a new ViolationsDetectedEvent.
func NewViolationsDetectedEvent(scheduleID string, violations []string) ViolationsDetectedEvent {
	vs := make([]string, len(violations))
	copy(vs, violations)
	return ViolationsDetectedEvent{
		BaseEvent:  NewBaseEvent(EventViolationsDetected, scheduleID),
		ScheduleID: scheduleID,
		Violations: vs,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// System Events
// ═══════════════════════════════════════════════════════════════════════════

// ImportCompletedEvent is emitted after the input data set has been loaded.
type ImportCompletedEvent struct {
	BaseEvent
	Source    string `json:"source"`
	Students  int    `json:"students"`
	Courses   int    `json:"courses"`
	Rooms     int    `json:"rooms"`
	TimeSlots int    `json:"time_slots"`
	Exams     int    `json:"exams"`
}

// Payload implements Event interface.
func (e ImportCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"source":     e.Source,
		"students":   e.Students,
		"courses":    e.Courses,
		"rooms":      e.Rooms,
		"time_slots": e.TimeSlots,
		"exams":      e.Exams,
	}
}

// NewImportCompletedEvent creates a new ImportCompletedEvent.
func NewImportCompletedEvent(source string, students, courses, rooms, timeSlots, exams int) ImportCompletedEvent {
	return ImportCompletedEvent{
		BaseEvent: NewBaseEvent(EventImportCompleted, source),
		Source:    source,
		Students:  students,
		Courses:   courses,
		Rooms:     rooms,
		TimeSlots: timeSlots,
		Exams:     exams,
	}
}

// ExportCompletedEvent is emitted after run reports have been written.
type ExportCompletedEvent struct {
	BaseEvent
	ScheduleID string `json:"schedule_id"`
	OutputDir  string `json:"output_dir"`
}

// Payload implements Event interface.
func (e ExportCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"schedule_id": e.ScheduleID,
		"output_dir":  e.OutputDir,
	}
}

// NewExportCompletedEvent creates a new ExportCompletedEvent.
func NewExportCompletedEvent(scheduleID, outputDir string) ExportCompletedEvent {
	return ExportCompletedEvent{
		BaseEvent:  NewBaseEvent(EventExportCompleted, scheduleID),
		ScheduleID: scheduleID,
		OutputDir:  outputDir,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Envelope (for serialization and transport)
// ═══════════════════════════════════════════════════════════════════════════

// EventEnvelope wraps an event for transport/storage.
type EventEnvelope struct {
	ID          string          `json:"id"`
	Type        EventType       `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Version     int             `json:"version"`
	Payload     json.RawMessage `json:"payload"`
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
