// Package postgres implements the PostgreSQL persistence layer for the exam
// scheduler.
package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE ROSTER
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create roster tables (students, courses, enrollments)
-- Version: 001

CREATE TABLE IF NOT EXISTS students (
    id VARCHAR(50) PRIMARY KEY,
    first_name VARCHAR(100) NOT NULL,
    last_name VARCHAR(100) NOT NULL,
    email VARCHAR(255) NOT NULL DEFAULT '',
    gender VARCHAR(20) NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_gender CHECK (gender IN ('', 'female', 'male', 'other'))
);

CREATE INDEX IF NOT EXISTS idx_students_email ON students(email) WHERE email != '';
CREATE INDEX IF NOT EXISTS idx_students_last_name ON students(last_name);

CREATE TABLE IF NOT EXISTS courses (
    id VARCHAR(50) PRIMARY KEY,
    code VARCHAR(30) NOT NULL,
    name VARCHAR(200) NOT NULL,
    credits INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_credits CHECK (credits >= 0)
);

CREATE INDEX IF NOT EXISTS idx_courses_code ON courses(code);

CREATE TABLE IF NOT EXISTS enrollments (
    id VARCHAR(50) PRIMARY KEY,
    student_id VARCHAR(50) NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    course_id VARCHAR(50) NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
    status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_enrollment_status CHECK (status IN ('ACTIVE', 'DROPPED', 'COMPLETED')),
    CONSTRAINT unique_student_course UNIQUE (student_id, course_id)
);

CREATE INDEX IF NOT EXISTS idx_enrollments_student ON enrollments(student_id);
CREATE INDEX IF NOT EXISTS idx_enrollments_course ON enrollments(course_id);
`

const migration001Down = `
DROP TABLE IF EXISTS enrollments;
DROP TABLE IF EXISTS courses;
DROP TABLE IF EXISTS students;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE RESOURCES
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create scheduling resources (rooms, time slots, exams)
-- Version: 002

CREATE TABLE IF NOT EXISTS rooms (
    id VARCHAR(50) PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    capacity INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_capacity CHECK (capacity >= 0)
);

CREATE TABLE IF NOT EXISTS time_slots (
    id BIGSERIAL PRIMARY KEY,
    slot_date DATE NOT NULL,
    start_minute INTEGER NOT NULL,
    end_minute INTEGER NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_minutes CHECK (
        start_minute >= 0 AND start_minute < 1440 AND
        end_minute > start_minute AND end_minute < 1440
    )
);

CREATE INDEX IF NOT EXISTS idx_time_slots_date ON time_slots(slot_date);

CREATE TABLE IF NOT EXISTS exams (
    id VARCHAR(50) PRIMARY KEY,
    course_id VARCHAR(50) NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
    name VARCHAR(200) NOT NULL,
    duration_minutes INTEGER NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_duration CHECK (duration_minutes > 0)
);

CREATE INDEX IF NOT EXISTS idx_exams_course ON exams(course_id);
`

const migration002Down = `
DROP TABLE IF EXISTS exams;
DROP TABLE IF EXISTS time_slots;
DROP TABLE IF EXISTS rooms;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: CREATE SCHEDULES
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
-- Migration: Create schedule run tables
-- Version: 003

CREATE TABLE IF NOT EXISTS schedules (
    id UUID PRIMARY KEY,
    session_count INTEGER NOT NULL DEFAULT 0,
    student_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    saved_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS exam_sessions (
    id VARCHAR(80) PRIMARY KEY,
    schedule_id UUID NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
    exam_id VARCHAR(50) NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
    room_id VARCHAR(50) REFERENCES rooms(id) ON DELETE SET NULL,
    slot_date DATE,
    start_minute INTEGER,
    end_minute INTEGER,
    max_capacity INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_exam_sessions_schedule ON exam_sessions(schedule_id);
CREATE INDEX IF NOT EXISTS idx_exam_sessions_exam ON exam_sessions(exam_id);

CREATE TABLE IF NOT EXISTS session_students (
    session_id VARCHAR(80) NOT NULL REFERENCES exam_sessions(id) ON DELETE CASCADE,
    student_id VARCHAR(50) NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,

    PRIMARY KEY (session_id, student_id)
);

CREATE INDEX IF NOT EXISTS idx_session_students_student ON session_students(student_id);

CREATE TABLE IF NOT EXISTS schedule_violations (
    id BIGSERIAL PRIMARY KEY,
    schedule_id UUID NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    description TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_schedule_violations_schedule ON schedule_violations(schedule_id);
`

const migration003Down = `
DROP TABLE IF EXISTS schedule_violations;
DROP TABLE IF EXISTS session_students;
DROP TABLE IF EXISTS exam_sessions;
DROP TABLE IF EXISTS schedules;
`
