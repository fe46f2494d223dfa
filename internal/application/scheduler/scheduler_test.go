package scheduler

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
	"github.com/examdesk/exam-scheduler/internal/domain/shared"
	"github.com/examdesk/exam-scheduler/pkg/logger"
)

// recorder collects published events for assertions.
type recorder struct {
	events []shared.Event
}

func (r *recorder) Publish(event shared.Event) error {
	r.events = append(r.events, event)
	return nil
}

func (r *recorder) byType(eventType shared.EventType) []shared.Event {
	var out []shared.Event
	for _, e := range r.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
}

func testSlot(t *testing.T, day, startHour, endHour int) *scheduling.TimeSlot {
	t.Helper()
	start, err := scheduling.NewTimeOfDay(startHour, 0)
	require.NoError(t, err)
	end, err := scheduling.NewTimeOfDay(endHour, 0)
	require.NoError(t, err)
	slot, err := scheduling.NewTimeSlot(scheduling.NewDate(2026, time.June, day), start, end)
	require.NoError(t, err)
	return slot
}

func testRoom(t *testing.T, id string, capacity int) *scheduling.Room {
	t.Helper()
	room, err := scheduling.NewRoom(scheduling.RoomID(id), "Room "+id, capacity)
	require.NoError(t, err)
	return room
}

// examWithStudents builds a course with n enrolled students and one exam.
func examWithStudents(t *testing.T, courseID string, n int) (*scheduling.Course, *scheduling.Exam) {
	t.Helper()
	course, err := scheduling.NewCourse(scheduling.CourseID(courseID), "CS101", "Course "+courseID, 5)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		id := scheduling.StudentID(courseID + "-st" + string(rune('a'+i)))
		st, err := scheduling.NewStudent(scheduling.NewStudentParams{
			ID: id, FirstName: "Student", LastName: string(rune('A' + i)),
		})
		require.NoError(t, err)
		_, err = scheduling.NewEnrollment(scheduling.EnrollmentID("en-"+string(id)), st, course)
		require.NoError(t, err)
	}
	exam, err := scheduling.NewExam(scheduling.ExamID(courseID+"-final"), course, "Final "+courseID, 2*time.Hour)
	require.NoError(t, err)
	return course, exam
}

func TestGenerateSchedule_SingleRoomExhausted(t *testing.T) {
	course, exam := examWithStudents(t, "C1", 3)
	rec := &recorder{}
	s := New(Config{
		Rooms:     []*scheduling.Room{testRoom(t, "R1", 2)},
		TimeSlots: []*scheduling.TimeSlot{testSlot(t, 1, 9, 11)},
		Logger:    quietLogger(),
		Events:    rec,
	})

	schedule := s.GenerateSchedule([]*scheduling.Course{course}, []*scheduling.Exam{exam})

	// The only room seats two; once it is full the pool has nothing left
	// to offer, so the third student stays unassigned.
	require.Equal(t, 1, schedule.SessionCount())
	sess := schedule.Sessions()[0]
	assert.Equal(t, scheduling.SessionID("C1-final-S1"), sess.ID())
	assert.Len(t, sess.AssignedStudents(), 2)

	unassigned := rec.byType(shared.EventStudentUnassigned)
	require.Len(t, unassigned, 1)
}

func TestGenerateSchedule_SplitsExamAcrossRooms(t *testing.T) {
	course, exam := examWithStudents(t, "C1", 5)
	s := New(Config{
		Rooms: []*scheduling.Room{
			testRoom(t, "small", 2),
			testRoom(t, "big", 3),
		},
		TimeSlots: []*scheduling.TimeSlot{testSlot(t, 1, 9, 11), testSlot(t, 2, 9, 11)},
		Logger:    quietLogger(),
	})

	schedule := s.GenerateSchedule([]*scheduling.Course{course}, []*scheduling.Exam{exam})

	// No single room seats five, so the run falls back to the biggest room,
	// then fits the remaining two into the small one.
	require.Equal(t, 2, schedule.SessionCount())
	first, second := schedule.Sessions()[0], schedule.Sessions()[1]
	assert.Equal(t, scheduling.RoomID("big"), first.Room().ID())
	assert.Len(t, first.AssignedStudents(), 3)
	assert.Equal(t, scheduling.RoomID("small"), second.Room().ID())
	assert.Len(t, second.AssignedStudents(), 2)
}

func TestGenerateSchedule_BestFitRoom(t *testing.T) {
	course, exam := examWithStudents(t, "C1", 2)
	s := New(Config{
		Rooms: []*scheduling.Room{
			testRoom(t, "hall", 100),
			testRoom(t, "lab", 3),
		},
		TimeSlots: []*scheduling.TimeSlot{testSlot(t, 1, 9, 11)},
		Logger:    quietLogger(),
	})

	schedule := s.GenerateSchedule([]*scheduling.Course{course}, []*scheduling.Exam{exam})

	require.Equal(t, 1, schedule.SessionCount())
	assert.Equal(t, scheduling.RoomID("lab"), schedule.Sessions()[0].Room().ID(),
		"smallest sufficient room wins over the biggest")
}

func TestGenerateSchedule_SkipsExamsWithoutStudents(t *testing.T) {
	course, err := scheduling.NewCourse("empty", "CS000", "Empty Course", 1)
	require.NoError(t, err)
	exam, err := scheduling.NewExam("empty-final", course, "Empty Final", time.Hour)
	require.NoError(t, err)
	rec := &recorder{}
	s := New(Config{
		Rooms:     []*scheduling.Room{testRoom(t, "R1", 10)},
		TimeSlots: []*scheduling.TimeSlot{testSlot(t, 1, 9, 11)},
		Logger:    quietLogger(),
		Events:    rec,
	})

	schedule := s.GenerateSchedule([]*scheduling.Course{course}, []*scheduling.Exam{exam})

	assert.Equal(t, 0, schedule.SessionCount())
	assert.Empty(t, rec.byType(shared.EventSessionCreated))
	assert.Empty(t, rec.byType(shared.EventStudentUnassigned))
}

func TestGenerateSchedule_EmptyPoolsLeaveEveryoneUnassigned(t *testing.T) {
	course, exam := examWithStudents(t, "C1", 2)
	rec := &recorder{}
	s := New(Config{Logger: quietLogger(), Events: rec})

	schedule := s.GenerateSchedule([]*scheduling.Course{course}, []*scheduling.Exam{exam})

	assert.Equal(t, 0, schedule.SessionCount())
	assert.Len(t, rec.byType(shared.EventStudentUnassigned), 2)
}

func TestGenerateSchedule_PoolsStayPristine(t *testing.T) {
	course, exam := examWithStudents(t, "C1", 3)
	room := testRoom(t, "R1", 2)
	slot := testSlot(t, 1, 9, 11)
	s := New(Config{
		Rooms:     []*scheduling.Room{room},
		TimeSlots: []*scheduling.TimeSlot{slot},
		Logger:    quietLogger(),
	})

	s.GenerateSchedule([]*scheduling.Course{course}, []*scheduling.Exam{exam})

	assert.Equal(t, 2, room.Capacity(), "pool room must not be mutated by a run")
	assert.Equal(t, "09:00-11:00", slot.Window())
}

func TestGenerateSchedule_WarnsWhenSeatsRunOut(t *testing.T) {
	course, exam := examWithStudents(t, "C1", 3)
	var buf bytes.Buffer
	s := New(Config{
		Rooms:     []*scheduling.Room{testRoom(t, "R1", 2)},
		TimeSlots: []*scheduling.TimeSlot{testSlot(t, 1, 9, 11)},
		Logger:    logger.New(logger.Options{Output: &buf, Level: logger.LevelWarn}),
	})

	s.GenerateSchedule([]*scheduling.Course{course}, []*scheduling.Exam{exam})

	// The shortfall comes from the drained room pool, not from clashes.
	assert.Contains(t, buf.String(), "no seats left in any room")
	assert.NotContains(t, buf.String(), "without a clash")
}

func TestGenerateSchedule_WarnsWhenOnlyClashesRemain(t *testing.T) {
	courseA, err := scheduling.NewCourse("C1", "CS101", "Algorithms", 5)
	require.NoError(t, err)
	courseB, err := scheduling.NewCourse("C2", "CS102", "Databases", 5)
	require.NoError(t, err)
	st, err := scheduling.NewStudent(scheduling.NewStudentParams{ID: "st1", FirstName: "Aida", LastName: "Nurlanova"})
	require.NoError(t, err)
	_, err = scheduling.NewEnrollment("en1", st, courseA)
	require.NoError(t, err)
	_, err = scheduling.NewEnrollment("en2", st, courseB)
	require.NoError(t, err)
	examA, err := scheduling.NewExam("C1-final", courseA, "Algorithms Final", 2*time.Hour)
	require.NoError(t, err)
	examB, err := scheduling.NewExam("C2-final", courseB, "Databases Final", 2*time.Hour)
	require.NoError(t, err)

	var buf bytes.Buffer
	rec := &recorder{}
	s := New(Config{
		Rooms:     []*scheduling.Room{testRoom(t, "R1", 10)},
		TimeSlots: []*scheduling.TimeSlot{testSlot(t, 1, 9, 11)},
		Logger:    logger.New(logger.Options{Output: &buf, Level: logger.LevelWarn}),
		Events:    rec,
	})

	schedule := s.GenerateSchedule(
		[]*scheduling.Course{courseA, courseB},
		[]*scheduling.Exam{examA, examB})

	// The only slot is taken by the first exam, seats are plentiful; the
	// second exam fails on the overlap, not on room capacity.
	require.Equal(t, 1, schedule.SessionCount())
	assert.Contains(t, buf.String(), "no student can be placed without a clash")
	assert.NotContains(t, buf.String(), "no seats left in any room")
	assert.Len(t, rec.byType(shared.EventStudentUnassigned), 1)
}

func TestGenerateSchedule_SessionIDsAreNumberedPerExam(t *testing.T) {
	course, exam := examWithStudents(t, "C1", 4)
	s := New(Config{
		Rooms:     []*scheduling.Room{testRoom(t, "R1", 2), testRoom(t, "R2", 2)},
		TimeSlots: []*scheduling.TimeSlot{testSlot(t, 1, 9, 11), testSlot(t, 2, 9, 11)},
		Logger:    quietLogger(),
	})

	schedule := s.GenerateSchedule([]*scheduling.Course{course}, []*scheduling.Exam{exam})

	require.Equal(t, 2, schedule.SessionCount())
	assert.Equal(t, scheduling.SessionID("C1-final-S1"), schedule.Sessions()[0].ID())
	assert.Equal(t, scheduling.SessionID("C1-final-S2"), schedule.Sessions()[1].ID())
}

func TestGenerateSchedule_PublishesLifecycleEvents(t *testing.T) {
	course, exam := examWithStudents(t, "C1", 2)
	rec := &recorder{}
	s := New(Config{
		Rooms:     []*scheduling.Room{testRoom(t, "R1", 10)},
		TimeSlots: []*scheduling.TimeSlot{testSlot(t, 1, 9, 11)},
		Logger:    quietLogger(),
		Events:    rec,
	})

	schedule := s.GenerateSchedule([]*scheduling.Course{course}, []*scheduling.Exam{exam})

	require.Len(t, rec.byType(shared.EventSessionCreated), 1)
	generated := rec.byType(shared.EventScheduleGenerated)
	require.Len(t, generated, 1)
	assert.Equal(t, schedule.ID(), generated[0].AggregateID())
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{Logger: quietLogger()})
	assert.Equal(t, 2, s.MaxExamsPerDay())

	s = New(Config{MaxExamsPerDay: 3, Logger: quietLogger()})
	assert.Equal(t, 3, s.MaxExamsPerDay())
}
