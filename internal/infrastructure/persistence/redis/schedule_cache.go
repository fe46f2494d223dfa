package redis

import (
	"context"
	"time"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
)

// ScheduleCache caches schedule summaries and violation reports on top of the
// generic Cache. Entries expire after a TTL; PostgreSQL stays the source of
// truth.
type ScheduleCache struct {
	cache *Cache
}

// NewScheduleCache creates a new ScheduleCache.
func NewScheduleCache(cache *Cache) *ScheduleCache {
	return &ScheduleCache{cache: cache}
}

// cachedSummary is the wire form of a schedule summary.
type cachedSummary struct {
	ID           string    `json:"id"`
	SessionCount int       `json:"session_count"`
	StudentCount int       `json:"student_count"`
	Violations   []string  `json:"violations,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetSummary returns a cached schedule summary.
// Returns ErrCacheMiss if the schedule is not cached.
func (s *ScheduleCache) GetSummary(ctx context.Context, scheduleID string) (*scheduling.ScheduleSummary, error) {
	var cached cachedSummary
	if err := s.cache.Get(ctx, ScheduleKey(scheduleID), &cached); err != nil {
		return nil, err
	}
	return &scheduling.ScheduleSummary{
		ID:           cached.ID,
		SessionCount: cached.SessionCount,
		StudentCount: cached.StudentCount,
		Violations:   cached.Violations,
		CreatedAt:    cached.CreatedAt,
	}, nil
}

// SetSummary caches a schedule summary with the default TTL.
func (s *ScheduleCache) SetSummary(ctx context.Context, summary *scheduling.ScheduleSummary) error {
	if summary == nil {
		return ErrCacheNilValue
	}
	cached := cachedSummary{
		ID:           summary.ID,
		SessionCount: summary.SessionCount,
		StudentCount: summary.StudentCount,
		Violations:   summary.Violations,
		CreatedAt:    summary.CreatedAt,
	}
	return s.cache.Set(ctx, ScheduleKey(summary.ID), cached, TTLScheduleSummary)
}

// GetViolations returns the cached violation report for a schedule.
// Returns ErrCacheMiss if the report is not cached.
func (s *ScheduleCache) GetViolations(ctx context.Context, scheduleID string) ([]string, error) {
	var violations []string
	if err := s.cache.Get(ctx, ViolationsKey(scheduleID), &violations); err != nil {
		return nil, err
	}
	return violations, nil
}

// SetViolations caches the violation report for a schedule.
func (s *ScheduleCache) SetViolations(ctx context.Context, scheduleID string, violations []string) error {
	if violations == nil {
		violations = []string{}
	}
	return s.cache.Set(ctx, ViolationsKey(scheduleID), violations, TTLViolationReport)
}

// Invalidate removes all cached entries for a schedule.
func (s *ScheduleCache) Invalidate(ctx context.Context, scheduleID string) error {
	return s.cache.Delete(ctx, ScheduleKey(scheduleID), ViolationsKey(scheduleID))
}
