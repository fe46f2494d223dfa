// Package memory provides an in-memory implementation of the scheduling
// repositories. It backs the CLI on small datasets and the package tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

// Store is a mutex-guarded in-memory store for all scheduling entities.
// Insertion order is preserved for every List operation.
type Store struct {
	mu sync.RWMutex

	students     map[scheduling.StudentID]*scheduling.Student
	studentOrder []scheduling.StudentID

	courses     map[scheduling.CourseID]*scheduling.Course
	courseOrder []scheduling.CourseID

	enrollments map[scheduling.EnrollmentID]*scheduling.Enrollment

	rooms     map[scheduling.RoomID]*scheduling.Room
	roomOrder []scheduling.RoomID

	timeSlots []*scheduling.TimeSlot

	exams     map[scheduling.ExamID]*scheduling.Exam
	examOrder []scheduling.ExamID

	schedules     map[string]*storedSchedule
	scheduleOrder []string
}

type storedSchedule struct {
	schedule   *scheduling.Schedule
	violations []string
	savedAt    time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		students:    make(map[scheduling.StudentID]*scheduling.Student),
		courses:     make(map[scheduling.CourseID]*scheduling.Course),
		enrollments: make(map[scheduling.EnrollmentID]*scheduling.Enrollment),
		rooms:       make(map[scheduling.RoomID]*scheduling.Room),
		exams:       make(map[scheduling.ExamID]*scheduling.Exam),
		schedules:   make(map[string]*storedSchedule),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// StudentRepository
// ──────────────────────────────────────────────────────────────────────────────

func (s *Store) CreateStudent(_ context.Context, student *scheduling.Student) error {
	if student == nil {
		return shared.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[student.ID()]; ok {
		return shared.ErrStudentAlreadyExists
	}
	s.students[student.ID()] = student
	s.studentOrder = append(s.studentOrder, student.ID())
	return nil
}

func (s *Store) GetStudent(_ context.Context, id scheduling.StudentID) (*scheduling.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	student, ok := s.students[id]
	if !ok {
		return nil, shared.ErrStudentNotFound
	}
	return student, nil
}

func (s *Store) ListStudents(_ context.Context) ([]*scheduling.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*scheduling.Student, 0, len(s.studentOrder))
	for _, id := range s.studentOrder {
		out = append(out, s.students[id])
	}
	return out, nil
}

func (s *Store) DeleteStudent(_ context.Context, id scheduling.StudentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return shared.ErrStudentNotFound
	}
	delete(s.students, id)
	for i, existing := range s.studentOrder {
		if existing == id {
			s.studentOrder = append(s.studentOrder[:i], s.studentOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) CountStudents(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.students), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// CourseRepository
// ──────────────────────────────────────────────────────────────────────────────

func (s *Store) CreateCourse(_ context.Context, course *scheduling.Course) error {
	if course == nil {
		return shared.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[course.ID()]; ok {
		return shared.ErrCourseAlreadyExists
	}
	s.courses[course.ID()] = course
	s.courseOrder = append(s.courseOrder, course.ID())
	return nil
}

func (s *Store) GetCourse(_ context.Context, id scheduling.CourseID) (*scheduling.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	course, ok := s.courses[id]
	if !ok {
		return nil, shared.ErrCourseNotFound
	}
	return course, nil
}

func (s *Store) ListCourses(_ context.Context) ([]*scheduling.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*scheduling.Course, 0, len(s.courseOrder))
	for _, id := range s.courseOrder {
		out = append(out, s.courses[id])
	}
	return out, nil
}

func (s *Store) SaveEnrollment(_ context.Context, enrollment *scheduling.Enrollment) error {
	if enrollment == nil {
		return shared.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollments[enrollment.ID()] = enrollment
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// RoomRepository
// ──────────────────────────────────────────────────────────────────────────────

func (s *Store) CreateRoom(_ context.Context, room *scheduling.Room) error {
	if room == nil {
		return shared.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID()]; ok {
		return shared.ErrRoomAlreadyExists
	}
	s.rooms[room.ID()] = room
	s.roomOrder = append(s.roomOrder, room.ID())
	return nil
}

func (s *Store) GetRoom(_ context.Context, id scheduling.RoomID) (*scheduling.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, shared.ErrRoomNotFound
	}
	return room, nil
}

func (s *Store) ListRooms(_ context.Context) ([]*scheduling.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*scheduling.Room, 0, len(s.roomOrder))
	for _, id := range s.roomOrder {
		out = append(out, s.rooms[id])
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TimeSlotRepository
// ──────────────────────────────────────────────────────────────────────────────

func (s *Store) AddTimeSlot(_ context.Context, slot *scheduling.TimeSlot) error {
	if slot == nil {
		return shared.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeSlots = append(s.timeSlots, slot)
	return nil
}

func (s *Store) ListTimeSlots(_ context.Context) ([]*scheduling.TimeSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*scheduling.TimeSlot, len(s.timeSlots))
	copy(out, s.timeSlots)
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// ExamRepository
// ──────────────────────────────────────────────────────────────────────────────

func (s *Store) CreateExam(_ context.Context, exam *scheduling.Exam) error {
	if exam == nil {
		return shared.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.exams[exam.ID()]; ok {
		return shared.ErrExamAlreadyExists
	}
	s.exams[exam.ID()] = exam
	s.examOrder = append(s.examOrder, exam.ID())
	return nil
}

func (s *Store) GetExam(_ context.Context, id scheduling.ExamID) (*scheduling.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exam, ok := s.exams[id]
	if !ok {
		return nil, shared.ErrExamNotFound
	}
	return exam, nil
}

func (s *Store) ListExams(_ context.Context) ([]*scheduling.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*scheduling.Exam, 0, len(s.examOrder))
	for _, id := range s.examOrder {
		out = append(out, s.exams[id])
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// ScheduleRepository
// ──────────────────────────────────────────────────────────────────────────────

func (s *Store) SaveSchedule(_ context.Context, schedule *scheduling.Schedule, violations []string) error {
	if schedule == nil {
		return shared.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schedules[schedule.ID()]; !ok {
		s.scheduleOrder = append(s.scheduleOrder, schedule.ID())
	}
	stored := &storedSchedule{
		schedule:   schedule,
		violations: make([]string, len(violations)),
		savedAt:    time.Now().UTC(),
	}
	copy(stored.violations, violations)
	s.schedules[schedule.ID()] = stored
	return nil
}

func (s *Store) GetScheduleSummary(_ context.Context, id string) (*scheduling.ScheduleSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.schedules[id]
	if !ok {
		return nil, shared.ErrScheduleNotFound
	}
	violations := make([]string, len(stored.violations))
	copy(violations, stored.violations)
	return &scheduling.ScheduleSummary{
		ID:           id,
		SessionCount: stored.schedule.SessionCount(),
		StudentCount: len(stored.schedule.Students()),
		Violations:   violations,
		CreatedAt:    stored.schedule.CreatedAt(),
	}, nil
}

func (s *Store) ListScheduleIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.scheduleOrder))
	copy(out, s.scheduleOrder)
	return out, nil
}

func (s *Store) DeleteSchedule(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schedules[id]; !ok {
		return shared.ErrScheduleNotFound
	}
	delete(s.schedules, id)
	for i, existing := range s.scheduleOrder {
		if existing == id {
			s.scheduleOrder = append(s.scheduleOrder[:i], s.scheduleOrder[i+1:]...)
			break
		}
	}
	return nil
}
