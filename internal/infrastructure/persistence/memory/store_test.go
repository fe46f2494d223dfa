package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

func newStudent(t *testing.T, id string) *scheduling.Student {
	t.Helper()
	st, err := scheduling.NewStudent(scheduling.NewStudentParams{
		ID: scheduling.StudentID(id), FirstName: "Test", LastName: "Student",
	})
	require.NoError(t, err)
	return st
}

func TestStore_StudentLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.CreateStudent(ctx, newStudent(t, "st1")))
	require.NoError(t, store.CreateStudent(ctx, newStudent(t, "st2")))

	err := store.CreateStudent(ctx, newStudent(t, "st1"))
	assert.True(t, shared.IsAlreadyExists(err))

	got, err := store.GetStudent(ctx, "st1")
	require.NoError(t, err)
	assert.Equal(t, scheduling.StudentID("st1"), got.ID())

	_, err = store.GetStudent(ctx, "missing")
	assert.True(t, shared.IsNotFound(err))

	list, err := store.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, scheduling.StudentID("st1"), list[0].ID(), "insertion order is preserved")

	count, err := store.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, store.DeleteStudent(ctx, "st1"))
	assert.True(t, shared.IsNotFound(store.DeleteStudent(ctx, "st1")))

	list, err = store.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, scheduling.StudentID("st2"), list[0].ID())
}

func TestStore_NilInputsRejected(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	assert.Error(t, store.CreateStudent(ctx, nil))
	assert.Error(t, store.CreateCourse(ctx, nil))
	assert.Error(t, store.CreateRoom(ctx, nil))
	assert.Error(t, store.CreateExam(ctx, nil))
	assert.Error(t, store.AddTimeSlot(ctx, nil))
	assert.Error(t, store.SaveEnrollment(ctx, nil))
	assert.Error(t, store.SaveSchedule(ctx, nil, nil))
}

func TestStore_TimeSlotsKeepOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	morning, err := scheduling.NewTimeSlot(scheduling.NewDate(2026, time.June, 1), 9*60, 11*60)
	require.NoError(t, err)
	noon, err := scheduling.NewTimeSlot(scheduling.NewDate(2026, time.June, 1), 12*60, 14*60)
	require.NoError(t, err)
	require.NoError(t, store.AddTimeSlot(ctx, morning))
	require.NoError(t, store.AddTimeSlot(ctx, noon))

	slots, err := store.ListTimeSlots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Same(t, morning, slots[0])
	assert.Same(t, noon, slots[1])
}

func TestStore_ScheduleSummary(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	course, err := scheduling.NewCourse("C1", "CS101", "Algorithms", 5)
	require.NoError(t, err)
	exam, err := scheduling.NewExam("E1", course, "Final", 2*time.Hour)
	require.NoError(t, err)
	room, err := scheduling.NewRoom("R1", "Main Hall", 10)
	require.NoError(t, err)
	sess, err := scheduling.NewExamSession("E1-S1", exam, nil, room)
	require.NoError(t, err)
	require.True(t, sess.AssignStudent(newStudent(t, "st1")))

	schedule := scheduling.NewSchedule("run-1")
	require.True(t, schedule.AddSession(sess))

	violations := []string{"SOME VIOLATION"}
	require.NoError(t, store.SaveSchedule(ctx, schedule, violations))

	// Mutating the caller's slice must not leak into the stored report.
	violations[0] = "changed"

	summary, err := store.GetScheduleSummary(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", summary.ID)
	assert.Equal(t, 1, summary.SessionCount)
	assert.Equal(t, 1, summary.StudentCount)
	assert.Equal(t, []string{"SOME VIOLATION"}, summary.Violations)

	ids, err := store.ListScheduleIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1"}, ids)

	require.NoError(t, store.DeleteSchedule(ctx, "run-1"))
	_, err = store.GetScheduleSummary(ctx, "run-1")
	assert.True(t, shared.IsNotFound(err))
}
