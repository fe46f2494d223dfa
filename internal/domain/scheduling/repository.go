package scheduling

import (
	"context"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Контракты для работы с хранилищем. В ядре нет глобального изменяемого
// реестра: хранилище передаётся планировщику и коллабораторам явно.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository определяет операции для работы со студентами.
type StudentRepository interface {
	// CreateStudent сохраняет нового студента.
	// Возвращает shared.ErrStudentAlreadyExists, если студент уже существует.
	CreateStudent(ctx context.Context, student *Student) error

	// GetStudent возвращает студента по идентификатору.
	// Возвращает shared.ErrStudentNotFound, если студент не найден.
	GetStudent(ctx context.Context, id StudentID) (*Student, error)

	// ListStudents возвращает всех студентов в порядке создания.
	ListStudents(ctx context.Context) ([]*Student, error)

	// DeleteStudent удаляет студента.
	DeleteStudent(ctx context.Context, id StudentID) error

	// CountStudents возвращает общее количество студентов.
	CountStudents(ctx context.Context) (int, error)
}

// CourseRepository определяет операции для работы с курсами и записями.
type CourseRepository interface {
	// CreateCourse сохраняет новый курс.
	CreateCourse(ctx context.Context, course *Course) error

	// GetCourse возвращает курс по идентификатору.
	GetCourse(ctx context.Context, id CourseID) (*Course, error)

	// ListCourses возвращает все курсы в порядке создания.
	ListCourses(ctx context.Context) ([]*Course, error)

	// SaveEnrollment сохраняет запись студента на курс.
	SaveEnrollment(ctx context.Context, enrollment *Enrollment) error
}

// RoomRepository определяет операции для работы с аудиториями.
type RoomRepository interface {
	// CreateRoom сохраняет новую аудиторию.
	CreateRoom(ctx context.Context, room *Room) error

	// GetRoom возвращает аудиторию по идентификатору.
	GetRoom(ctx context.Context, id RoomID) (*Room, error)

	// ListRooms возвращает все аудитории в порядке создания.
	ListRooms(ctx context.Context) ([]*Room, error)
}

// TimeSlotRepository определяет операции для работы с пулом временных окон.
// У окна нет собственного идентификатора - пул хранится как список.
type TimeSlotRepository interface {
	// AddTimeSlot добавляет окно в пул.
	AddTimeSlot(ctx context.Context, slot *TimeSlot) error

	// ListTimeSlots возвращает пул окон в порядке добавления.
	ListTimeSlots(ctx context.Context) ([]*TimeSlot, error)
}

// ExamRepository определяет операции для работы с экзаменами.
type ExamRepository interface {
	// CreateExam сохраняет новый экзамен.
	CreateExam(ctx context.Context, exam *Exam) error

	// GetExam возвращает экзамен по идентификатору.
	GetExam(ctx context.Context, id ExamID) (*Exam, error)

	// ListExams возвращает все экзамены в порядке создания.
	ListExams(ctx context.Context) ([]*Exam, error)
}

// ScheduleSummary - компактное представление сохранённого расписания для
// отчётов и кеширования. Читающая модель, а не доменная сущность.
type ScheduleSummary struct {
	ID           string
	SessionCount int
	StudentCount int
	Violations   []string
	CreatedAt    time.Time
}

// ScheduleRepository определяет операции для сохранения результатов прогона.
type ScheduleRepository interface {
	// SaveSchedule сохраняет расписание вместе с составами сессий.
	SaveSchedule(ctx context.Context, schedule *Schedule, violations []string) error

	// GetScheduleSummary возвращает сводку сохранённого расписания.
	// Возвращает shared.ErrScheduleNotFound, если расписание не найдено.
	GetScheduleSummary(ctx context.Context, id string) (*ScheduleSummary, error)

	// ListScheduleIDs возвращает идентификаторы сохранённых расписаний.
	ListScheduleIDs(ctx context.Context) ([]string, error)

	// DeleteSchedule удаляет сохранённое расписание.
	DeleteSchedule(ctx context.Context, id string) error
}
