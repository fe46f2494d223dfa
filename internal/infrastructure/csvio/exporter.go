package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
	"github.com/examdesk/exam-scheduler/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXPORT
// Entity exports mirror the import formats. The schedule report is a flat
// session-per-row file; the violation report is one description per row.
// ══════════════════════════════════════════════════════════════════════════════

func writeAll(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("csvio: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("csvio: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteStudents writes student records.
func WriteStudents(w io.Writer, students []*scheduling.Student) error {
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{
			s.ID().String(), s.FirstName(), s.LastName(), s.Email(), string(s.Gender()),
		})
	}
	return writeAll(w, []string{"id", "firstName", "lastName", "email", "gender"}, rows)
}

// WriteCourses writes course records.
func WriteCourses(w io.Writer, courses []*scheduling.Course) error {
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{
			c.ID().String(), c.Code(), c.Name(), strconv.Itoa(c.Credits()),
		})
	}
	return writeAll(w, []string{"id", "code", "name", "credits"}, rows)
}

// WriteRooms writes room records.
func WriteRooms(w io.Writer, rooms []*scheduling.Room) error {
	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []string{
			r.ID().String(), r.Name(), strconv.Itoa(r.Capacity()),
		})
	}
	return writeAll(w, []string{"id", "name", "capacity"}, rows)
}

// WriteTimeSlots writes time slot records.
func WriteTimeSlots(w io.Writer, slots []*scheduling.TimeSlot) error {
	rows := make([][]string, 0, len(slots))
	for _, slot := range slots {
		rows = append(rows, []string{
			slot.Date().String(),
			timeutil.FormatMinutes(int(slot.Start())),
			timeutil.FormatMinutes(int(slot.End())),
		})
	}
	return writeAll(w, []string{"date", "startTime", "endTime"}, rows)
}

// WriteExams writes exam records.
func WriteExams(w io.Writer, exams []*scheduling.Exam) error {
	rows := make([][]string, 0, len(exams))
	for _, e := range exams {
		rows = append(rows, []string{
			e.ID().String(), e.Course().ID().String(), e.Name(),
			strconv.Itoa(int(e.Duration().Minutes())),
		})
	}
	return writeAll(w, []string{"id", "courseId", "name", "durationMinutes"}, rows)
}

// WriteSchedule writes the schedule report: one row per (session, student)
// pair, so the file opens cleanly in spreadsheet tools. Sessions without a
// room or slot are written with blank fields rather than dropped.
func WriteSchedule(w io.Writer, schedule *scheduling.Schedule) error {
	header := []string{"sessionId", "examId", "examName", "date", "startTime", "endTime", "roomId", "studentId", "studentName"}
	if schedule == nil {
		return writeAll(w, header, nil)
	}

	var rows [][]string
	for _, sess := range schedule.Sessions() {
		var date, start, end string
		if slot := sess.TimeSlot(); slot != nil {
			date = slot.Date().String()
			start = timeutil.FormatMinutes(int(slot.Start()))
			end = timeutil.FormatMinutes(int(slot.End()))
		}
		var roomID string
		if room := sess.Room(); room != nil {
			roomID = room.ID().String()
		}
		base := []string{
			sess.ID().String(), sess.Exam().ID().String(), sess.Exam().Name(),
			date, start, end, roomID,
		}
		students := sess.AssignedStudents()
		if len(students) == 0 {
			rows = append(rows, append(base, "", ""))
			continue
		}
		for _, st := range students {
			row := make([]string, 0, len(header))
			row = append(row, base...)
			row = append(row, st.ID().String(), st.FullName())
			rows = append(rows, row)
		}
	}
	return writeAll(w, header, rows)
}

// WriteViolations writes the violation report, one description per row.
func WriteViolations(w io.Writer, violations []string) error {
	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		rows = append(rows, []string{v})
	}
	return writeAll(w, []string{"violation"}, rows)
}
