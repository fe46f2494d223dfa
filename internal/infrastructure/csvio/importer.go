// Package csvio reads and writes the flat delimited record formats the
// scheduler exchanges with the outside world: students, courses, rooms, time
// slots, exams and enrollments on the way in, schedule and violation reports
// on the way out. The engine itself never touches files; this package
// materializes entities for it.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
	"github.com/examdesk/exam-scheduler/internal/domain/shared"
	"github.com/examdesk/exam-scheduler/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD FORMATS
// Student:    id,firstName,lastName,email[,gender]
// Course:     id,code,name,credits
// Room:       id,name,capacity
// TimeSlot:   date,startTime,endTime            (ISO-8601: 2026-01-15,09:00,11:00)
// Exam:       id,courseId,name,durationMinutes
// Enrollment: id,studentId,courseId[,status]    (blank id gets a generated one)
// An optional header row is detected by its first field and skipped.
// ══════════════════════════════════════════════════════════════════════════════

func readRecords(r io.Reader, minFields, maxFields int) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvio: %w", err)
	}

	out := make([][]string, 0, len(records))
	for i, record := range records {
		if i == 0 && isHeader(record) {
			continue
		}
		if len(record) < minFields || len(record) > maxFields {
			return nil, fmt.Errorf("%w: line %d has %d fields", shared.ErrMalformedRecord, i+1, len(record))
		}
		for j := range record {
			record[j] = strings.TrimSpace(record[j])
		}
		out = append(out, record)
	}
	return out, nil
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(record[0])) {
	case "id", "date", "studentid", "student_id":
		return true
	}
	return false
}

// ReadStudents parses student records.
func ReadStudents(r io.Reader) ([]*scheduling.Student, error) {
	records, err := readRecords(r, 4, 5)
	if err != nil {
		return nil, err
	}

	out := make([]*scheduling.Student, 0, len(records))
	for _, record := range records {
		params := scheduling.NewStudentParams{
			ID:        scheduling.StudentID(record[0]),
			FirstName: record[1],
			LastName:  record[2],
			Email:     record[3],
		}
		if len(record) == 5 {
			params.Gender = scheduling.Gender(strings.ToLower(record[4]))
		}
		student, err := scheduling.NewStudent(params)
		if err != nil {
			return nil, fmt.Errorf("csvio: student %q: %w", record[0], err)
		}
		out = append(out, student)
	}
	return out, nil
}

// ReadCourses parses course records.
func ReadCourses(r io.Reader) ([]*scheduling.Course, error) {
	records, err := readRecords(r, 4, 4)
	if err != nil {
		return nil, err
	}

	out := make([]*scheduling.Course, 0, len(records))
	for _, record := range records {
		credits, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, fmt.Errorf("%w: course %q credits %q", shared.ErrMalformedRecord, record[0], record[3])
		}
		course, err := scheduling.NewCourse(scheduling.CourseID(record[0]), record[1], record[2], credits)
		if err != nil {
			return nil, fmt.Errorf("csvio: course %q: %w", record[0], err)
		}
		out = append(out, course)
	}
	return out, nil
}

// ReadRooms parses room records.
func ReadRooms(r io.Reader) ([]*scheduling.Room, error) {
	records, err := readRecords(r, 3, 3)
	if err != nil {
		return nil, err
	}

	out := make([]*scheduling.Room, 0, len(records))
	for _, record := range records {
		capacity, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("%w: room %q capacity %q", shared.ErrMalformedRecord, record[0], record[2])
		}
		room, err := scheduling.NewRoom(scheduling.RoomID(record[0]), record[1], capacity)
		if err != nil {
			return nil, fmt.Errorf("csvio: room %q: %w", record[0], err)
		}
		out = append(out, room)
	}
	return out, nil
}

// ReadTimeSlots parses time slot records.
func ReadTimeSlots(r io.Reader) ([]*scheduling.TimeSlot, error) {
	records, err := readRecords(r, 3, 3)
	if err != nil {
		return nil, err
	}

	out := make([]*scheduling.TimeSlot, 0, len(records))
	for _, record := range records {
		day, err := timeutil.ParseDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("csvio: time slot date %q: %w", record[0], err)
		}
		start, err := timeutil.ParseTime(record[1])
		if err != nil {
			return nil, fmt.Errorf("csvio: time slot start %q: %w", record[1], err)
		}
		end, err := timeutil.ParseTime(record[2])
		if err != nil {
			return nil, fmt.Errorf("csvio: time slot end %q: %w", record[2], err)
		}
		slot, err := scheduling.NewTimeSlot(
			scheduling.NewDate(day.Year(), day.Month(), day.Day()),
			scheduling.TimeOfDay(timeutil.MinutesOfDay(start)),
			scheduling.TimeOfDay(timeutil.MinutesOfDay(end)))
		if err != nil {
			return nil, fmt.Errorf("csvio: time slot %s: %w", record[0], err)
		}
		out = append(out, slot)
	}
	return out, nil
}

// ReadExams parses exam records and links them to the given courses.
func ReadExams(r io.Reader, courses []*scheduling.Course) ([]*scheduling.Exam, error) {
	courseByID := make(map[scheduling.CourseID]*scheduling.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID()] = c
	}

	records, err := readRecords(r, 4, 4)
	if err != nil {
		return nil, err
	}

	out := make([]*scheduling.Exam, 0, len(records))
	for _, record := range records {
		course, ok := courseByID[scheduling.CourseID(record[1])]
		if !ok {
			return nil, fmt.Errorf("%w: exam %q references course %q", shared.ErrUnknownCourse, record[0], record[1])
		}
		minutes, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, fmt.Errorf("%w: exam %q duration %q", shared.ErrMalformedRecord, record[0], record[3])
		}
		exam, err := scheduling.NewExam(scheduling.ExamID(record[0]), course,
			record[2], time.Duration(minutes)*time.Minute)
		if err != nil {
			return nil, fmt.Errorf("csvio: exam %q: %w", record[0], err)
		}
		out = append(out, exam)
	}
	return out, nil
}

// ReadEnrollments parses enrollment records and materializes the links
// between the given students and courses. Records with a blank id get a
// generated one.
func ReadEnrollments(r io.Reader, students []*scheduling.Student, courses []*scheduling.Course) ([]*scheduling.Enrollment, error) {
	studentByID := make(map[scheduling.StudentID]*scheduling.Student, len(students))
	for _, s := range students {
		studentByID[s.ID()] = s
	}
	courseByID := make(map[scheduling.CourseID]*scheduling.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID()] = c
	}

	records, err := readRecords(r, 3, 4)
	if err != nil {
		return nil, err
	}

	out := make([]*scheduling.Enrollment, 0, len(records))
	for _, record := range records {
		id := record[0]
		if id == "" {
			id = uuid.NewString()
		}
		student, ok := studentByID[scheduling.StudentID(record[1])]
		if !ok {
			return nil, fmt.Errorf("%w: enrollment %q references student %q", shared.ErrUnknownStudent, id, record[1])
		}
		course, ok := courseByID[scheduling.CourseID(record[2])]
		if !ok {
			return nil, fmt.Errorf("%w: enrollment %q references course %q", shared.ErrUnknownCourse, id, record[2])
		}
		enrollment, err := scheduling.NewEnrollment(scheduling.EnrollmentID(id), student, course)
		if err != nil {
			return nil, fmt.Errorf("csvio: enrollment %q: %w", id, err)
		}
		if len(record) == 4 && record[3] != "" {
			if err := enrollment.SetStatus(scheduling.EnrollmentStatus(strings.ToUpper(record[3]))); err != nil {
				return nil, fmt.Errorf("csvio: enrollment %q status %q: %w", id, record[3], err)
			}
		}
		out = append(out, enrollment)
	}
	return out, nil
}
