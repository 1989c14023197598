package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/types"
)

func testLogger() *logger.Logger {
	log, err := logger.New("test")
	if err != nil {
		panic(err)
	}
	return log
}

type scriptedNarrator struct {
	reply string
	err   error
	calls int
}

func (n *scriptedNarrator) Generate(ctx context.Context, system, user string) (string, error) {
	n.calls++
	return n.reply, n.err
}

type fakeAvailabilityRepo struct {
	slots []*types.AvailabilitySlot
	err   error
}

func (f *fakeAvailabilityRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.AvailabilitySlot, error) {
	return f.slots, f.err
}

func (f *fakeAvailabilityRepo) ReplaceForUser(ctx context.Context, userID uuid.UUID, slots []*types.AvailabilitySlot) ([]*types.AvailabilitySlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.slots = slots
	return slots, nil
}

type fakeStudySessionRepo struct {
	sessions []*types.StudySession
}

func (f *fakeStudySessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.StudySession) ([]*types.StudySession, error) {
	f.sessions = append(sessions, f.sessions...)
	return sessions, nil
}

func (f *fakeStudySessionRepo) ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.StudySession, error) {
	if len(f.sessions) > limit {
		return f.sessions[:limit], nil
	}
	return f.sessions, nil
}

type fakeAssessmentResultRepo struct {
	results []*types.AssessmentResult
}

func (f *fakeAssessmentResultRepo) Create(ctx context.Context, tx *gorm.DB, results []*types.AssessmentResult) ([]*types.AssessmentResult, error) {
	f.results = append(results, f.results...)
	return results, nil
}

func (f *fakeAssessmentResultRepo) ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.AssessmentResult, error) {
	if len(f.results) > limit {
		return f.results[:limit], nil
	}
	return f.results, nil
}

type fakeEnrollmentRepo struct {
	enrollments []*types.Enrollment
}

func (f *fakeEnrollmentRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Enrollment, error) {
	return f.enrollments, nil
}

func (f *fakeEnrollmentRepo) ListByUserAndExamType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, examType string) ([]*types.Enrollment, error) {
	out := []*types.Enrollment{}
	for _, e := range f.enrollments {
		if e.Course != nil && e.Course.ExamType == examType {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeScheduledSessionRepo struct {
	created       []*types.ScheduledSession
	between       []*types.ScheduledSession
	updatedID     uuid.UUID
	updatedStatus string
	updateErr     error
}

func (f *fakeScheduledSessionRepo) CreateBatch(ctx context.Context, tx *gorm.DB, sessions []*types.ScheduledSession) ([]*types.ScheduledSession, error) {
	f.created = append(f.created, sessions...)
	return sessions, nil
}

func (f *fakeScheduledSessionRepo) ListForUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.ScheduledSession, error) {
	return f.between, nil
}

func (f *fakeScheduledSessionRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, status string, actualDurationMinutes *int) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = sessionID
	f.updatedStatus = status
	return nil
}

type fakePathRunRepo struct {
	runs []*types.PathRun
}

func (f *fakePathRunRepo) Create(ctx context.Context, tx *gorm.DB, runs []*types.PathRun) ([]*types.PathRun, error) {
	f.runs = append(f.runs, runs...)
	return runs, nil
}

func (f *fakePathRunRepo) ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.PathRun, error) {
	return f.runs, nil
}

type fakeAICallLogRepo struct {
	entries []*types.AICallLog
}

func (f *fakeAICallLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.AICallLog) ([]*types.AICallLog, error) {
	f.entries = append(f.entries, logs...)
	return logs, nil
}
