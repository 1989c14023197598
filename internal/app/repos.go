package app

import (
	"gorm.io/gorm"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/repos"
)

type Repos struct {
	Availability     repos.AvailabilityRepo
	StudySession     repos.StudySessionRepo
	AssessmentResult repos.AssessmentResultRepo
	Enrollment       repos.EnrollmentRepo
	ScheduledSession repos.ScheduledSessionRepo
	PathRun          repos.PathRunRepo
	AICallLog        repos.AICallLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Availability:     repos.NewAvailabilityRepo(db, log),
		StudySession:     repos.NewStudySessionRepo(db, log),
		AssessmentResult: repos.NewAssessmentResultRepo(db, log),
		Enrollment:       repos.NewEnrollmentRepo(db, log),
		ScheduledSession: repos.NewScheduledSessionRepo(db, log),
		PathRun:          repos.NewPathRunRepo(db, log),
		AICallLog:        repos.NewAICallLogRepo(db, log),
	}
}
