package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
	"github.com/examdesk/exam-scheduler/internal/infrastructure/csvio"
)

func TestExportEntities(t *testing.T) {
	dir := t.TempDir()

	st, err := scheduling.NewStudent(scheduling.NewStudentParams{ID: "st1", FirstName: "Aida", LastName: "Nurlanova"})
	require.NoError(t, err)
	course, err := scheduling.NewCourse("C1", "CS101", "Algorithms", 5)
	require.NoError(t, err)
	room, err := scheduling.NewRoom("R1", "Main Hall", 50)
	require.NoError(t, err)
	slot, err := scheduling.NewTimeSlot(scheduling.NewDate(2026, time.June, 1), 9*60, 11*60)
	require.NoError(t, err)
	exam, err := scheduling.NewExam("E1", course, "Algorithms Final", 2*time.Hour)
	require.NoError(t, err)

	require.NoError(t, exportEntities(dir,
		[]*scheduling.Student{st}, []*scheduling.Course{course},
		[]*scheduling.Room{room}, []*scheduling.TimeSlot{slot},
		[]*scheduling.Exam{exam}))

	for _, name := range []string{"students.csv", "courses.csv", "rooms.csv", "timeslots.csv", "exams.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, "entities", name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}

	// The snapshot uses the input formats, so it reads straight back in.
	f, err := os.Open(filepath.Join(dir, "entities", "rooms.csv"))
	require.NoError(t, err)
	defer f.Close()
	rooms, err := csvio.ReadRooms(f)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, scheduling.RoomID("R1"), rooms[0].ID())
	assert.Equal(t, 50, rooms[0].Capacity())
}

func TestWriteReports(t *testing.T) {
	dir := t.TempDir()
	schedule := scheduling.NewSchedule("run-1")

	require.NoError(t, writeReports(dir, schedule, []string{"FIRST"}))

	data, err := os.ReadFile(filepath.Join(dir, "violations.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "FIRST")

	_, err = os.Stat(filepath.Join(dir, "schedule.csv"))
	assert.NoError(t, err)
}
