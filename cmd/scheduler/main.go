// Package main - точка входа пакетного планировщика экзаменов.
//
// Процесс выполняет один прогон:
// - читает CSV-файлы (студенты, курсы, записи, аудитории, окна, экзамены)
// - строит доменный граф и генерирует расписание жадным проходом
// - проверяет результат набором правил и пишет отчёты в выходной каталог
// - при включённых PostgreSQL и Redis сохраняет и кеширует результат прогона
//
// Нарушения правил не являются ошибкой процесса: расписание возвращается
// всегда, нарушения попадают в отчёт и в диагностический лог.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/examdesk/exam-scheduler/config"
	appscheduler "github.com/examdesk/exam-scheduler/internal/application/scheduler"
	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
	"github.com/examdesk/exam-scheduler/internal/domain/shared"
	"github.com/examdesk/exam-scheduler/internal/infrastructure/csvio"
	"github.com/examdesk/exam-scheduler/internal/infrastructure/messaging"
	"github.com/examdesk/exam-scheduler/internal/infrastructure/persistence/memory"
	"github.com/examdesk/exam-scheduler/internal/infrastructure/persistence/postgres"
	rediscache "github.com/examdesk/exam-scheduler/internal/infrastructure/persistence/redis"
	"github.com/examdesk/exam-scheduler/pkg/logger"
	"github.com/examdesk/exam-scheduler/pkg/retry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "exam-scheduler: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		Output:    os.Stdout,
		AddCaller: true,
	}).With(logger.String("service", cfg.App.Name))
	log.Info("starting schedule run",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Int("max_exams_per_day", cfg.Scheduler.MaxExamsPerDay))

	// ──────────────────────────────────────────────────────────────────────────
	// Шина событий и диагностический слушатель
	// ──────────────────────────────────────────────────────────────────────────

	bus := messaging.NewInMemoryEventBus(messaging.DefaultInMemoryEventBusConfig())
	defer bus.Close()
	if err := messaging.SubscribeDiagnostics(bus, slog.Default()); err != nil {
		return fmt.Errorf("subscribe diagnostics: %w", err)
	}

	// ──────────────────────────────────────────────────────────────────────────
	// Импорт CSV и наполнение хранилища
	// ──────────────────────────────────────────────────────────────────────────

	store := memory.NewStore()
	students, courses, rooms, slots, exams, err := importData(ctx, cfg.IO.DataDir, store)
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}
	_ = bus.Publish(shared.NewImportCompletedEvent(cfg.IO.DataDir,
		len(students), len(courses), len(rooms), len(slots), len(exams)))
	log.Info("data imported",
		logger.Int("students", len(students)),
		logger.Int("courses", len(courses)),
		logger.Int("rooms", len(rooms)),
		logger.Int("time_slots", len(slots)),
		logger.Int("exams", len(exams)))

	// ──────────────────────────────────────────────────────────────────────────
	// Генерация и проверка расписания
	// ──────────────────────────────────────────────────────────────────────────

	engine := appscheduler.New(appscheduler.Config{
		Rooms:          rooms,
		TimeSlots:      slots,
		MaxExamsPerDay: cfg.Scheduler.MaxExamsPerDay,
		Logger:         log,
		Events:         bus,
	})
	schedule := engine.GenerateSchedule(courses, exams)
	violations := schedule.Validate()

	if err := writeReports(cfg.IO.OutputDir, schedule, violations); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}
	if err := exportEntities(cfg.IO.OutputDir, students, courses, rooms, slots, exams); err != nil {
		return fmt.Errorf("export entities: %w", err)
	}
	_ = bus.Publish(shared.NewExportCompletedEvent(schedule.ID(), cfg.IO.OutputDir))
	log.Info("reports written",
		logger.ScheduleID(schedule.ID()),
		logger.String("output_dir", cfg.IO.OutputDir),
		logger.Violations(len(violations)))

	// ──────────────────────────────────────────────────────────────────────────
	// Персистентность (опционально)
	// ──────────────────────────────────────────────────────────────────────────

	if !cfg.Database.Disabled {
		if err := persistRun(ctx, cfg, log, students, courses, rooms, slots, exams, schedule, violations); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
	}
	if !cfg.Redis.Disabled {
		if err := cacheRun(ctx, cfg, log, schedule, violations); err != nil {
			// Кеш не критичен для результата прогона.
			log.Warn("cache run failed", logger.Err(err))
		}
	}

	log.Info("schedule run finished",
		logger.ScheduleID(schedule.ID()),
		logger.Int("sessions", schedule.SessionCount()),
		logger.Violations(len(violations)))
	return nil
}

// importData читает входные CSV-файлы и складывает сущности в хранилище.
// Файл enrollments.csv связывает студентов с курсами; без него планировщику
// нечего распределять.
func importData(ctx context.Context, dataDir string, store *memory.Store) (
	[]*scheduling.Student, []*scheduling.Course, []*scheduling.Room,
	[]*scheduling.TimeSlot, []*scheduling.Exam, error,
) {
	students, err := readFile(filepath.Join(dataDir, "students.csv"), csvio.ReadStudents)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	courses, err := readFile(filepath.Join(dataDir, "courses.csv"), csvio.ReadCourses)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	rooms, err := readFile(filepath.Join(dataDir, "rooms.csv"), csvio.ReadRooms)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	slots, err := readFile(filepath.Join(dataDir, "timeslots.csv"), csvio.ReadTimeSlots)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	exams, err := readFile(filepath.Join(dataDir, "exams.csv"), func(f io.Reader) ([]*scheduling.Exam, error) {
		return csvio.ReadExams(f, courses)
	})
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	enrollments, err := readFile(filepath.Join(dataDir, "enrollments.csv"), func(f io.Reader) ([]*scheduling.Enrollment, error) {
		return csvio.ReadEnrollments(f, students, courses)
	})
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	for _, s := range students {
		if err := store.CreateStudent(ctx, s); err != nil {
			return nil, nil, nil, nil, nil, err
		}
	}
	for _, c := range courses {
		if err := store.CreateCourse(ctx, c); err != nil {
			return nil, nil, nil, nil, nil, err
		}
	}
	for _, e := range enrollments {
		if err := store.SaveEnrollment(ctx, e); err != nil {
			return nil, nil, nil, nil, nil, err
		}
	}
	for _, r := range rooms {
		if err := store.CreateRoom(ctx, r); err != nil {
			return nil, nil, nil, nil, nil, err
		}
	}
	for _, slot := range slots {
		if err := store.AddTimeSlot(ctx, slot); err != nil {
			return nil, nil, nil, nil, nil, err
		}
	}
	for _, e := range exams {
		if err := store.CreateExam(ctx, e); err != nil {
			return nil, nil, nil, nil, nil, err
		}
	}

	return students, courses, rooms, slots, exams, nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	out, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// writeReports пишет отчёт по расписанию и отчёт о нарушениях.
func writeReports(outputDir string, schedule *scheduling.Schedule, violations []string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(outputDir, "schedule.csv"), func(f *os.File) error {
		return csvio.WriteSchedule(f, schedule)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(outputDir, "violations.csv"), func(f *os.File) error {
		return csvio.WriteViolations(f, violations)
	})
}

// exportEntities выгружает снимок входных сущностей рядом с отчётами.
// Форматы совпадают с входными, поэтому каталог прогона самодостаточен:
// его можно подать планировщику повторно без исходного каталога данных.
func exportEntities(
	outputDir string,
	students []*scheduling.Student, courses []*scheduling.Course,
	rooms []*scheduling.Room, slots []*scheduling.TimeSlot, exams []*scheduling.Exam,
) error {
	dir := filepath.Join(outputDir, "entities")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	writers := []struct {
		name  string
		write func(*os.File) error
	}{
		{"students.csv", func(f *os.File) error { return csvio.WriteStudents(f, students) }},
		{"courses.csv", func(f *os.File) error { return csvio.WriteCourses(f, courses) }},
		{"rooms.csv", func(f *os.File) error { return csvio.WriteRooms(f, rooms) }},
		{"timeslots.csv", func(f *os.File) error { return csvio.WriteTimeSlots(f, slots) }},
		{"exams.csv", func(f *os.File) error { return csvio.WriteExams(f, exams) }},
	}
	for _, w := range writers {
		if err := writeFile(filepath.Join(dir, w.name), w.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

// persistRun сохраняет исходные данные и результат прогона в PostgreSQL.
func persistRun(
	ctx context.Context, cfg *config.Config, log *logger.Logger,
	students []*scheduling.Student, courses []*scheduling.Course,
	rooms []*scheduling.Room, slots []*scheduling.TimeSlot,
	exams []*scheduling.Exam, schedule *scheduling.Schedule, violations []string,
) error {
	var conn *postgres.Connection
	err := retry.DatabaseRetrier().Do(ctx, func(ctx context.Context) error {
		var connErr error
		conn, connErr = postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		return connErr
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
		return err
	}

	roster := postgres.NewRosterRepository(conn)
	resources := postgres.NewResourceRepository(conn)
	for _, s := range students {
		if err := roster.CreateStudent(ctx, s); err != nil && !shared.IsAlreadyExists(err) {
			return err
		}
	}
	for _, c := range courses {
		if err := roster.CreateCourse(ctx, c); err != nil && !shared.IsAlreadyExists(err) {
			return err
		}
	}
	for _, s := range students {
		for _, e := range s.Enrollments() {
			if err := roster.SaveEnrollment(ctx, e); err != nil {
				return err
			}
		}
	}
	for _, r := range rooms {
		if err := resources.CreateRoom(ctx, r); err != nil && !shared.IsAlreadyExists(err) {
			return err
		}
	}
	for _, slot := range slots {
		if err := resources.AddTimeSlot(ctx, slot); err != nil {
			return err
		}
	}
	for _, e := range exams {
		if err := resources.CreateExam(ctx, e); err != nil && !shared.IsAlreadyExists(err) {
			return err
		}
	}

	if err := postgres.NewScheduleRepository(conn).SaveSchedule(ctx, schedule, violations); err != nil {
		return err
	}

	log.Info("run persisted", logger.ScheduleID(schedule.ID()))
	return nil
}

// cacheRun кеширует сводку прогона и отчёт о нарушениях в Redis.
func cacheRun(ctx context.Context, cfg *config.Config, log *logger.Logger, schedule *scheduling.Schedule, violations []string) error {
	redisCfg := rediscache.DefaultConfig()
	redisCfg.Host = cfg.Redis.Host
	redisCfg.Port = cfg.Redis.Port
	redisCfg.Password = cfg.Redis.Password
	redisCfg.DB = cfg.Redis.DB
	redisCfg.PoolSize = cfg.Redis.PoolSize
	redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
	redisCfg.DialTimeout = cfg.Redis.DialTimeout
	redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
	redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

	cache, err := rediscache.NewCache(redisCfg)
	if err != nil {
		return err
	}
	defer cache.Close()

	scheduleCache := rediscache.NewScheduleCache(cache)
	summary := &scheduling.ScheduleSummary{
		ID:           schedule.ID(),
		SessionCount: schedule.SessionCount(),
		StudentCount: len(schedule.Students()),
		Violations:   violations,
		CreatedAt:    schedule.CreatedAt(),
	}
	if err := scheduleCache.SetSummary(ctx, summary); err != nil {
		return err
	}
	if err := scheduleCache.SetViolations(ctx, schedule.ID(), violations); err != nil {
		return err
	}

	log.Info("run cached", logger.ScheduleID(schedule.ID()))
	return nil
}
