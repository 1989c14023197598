package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/okaforcj/examforge-backend/internal/types"
)

const scheduleSystemPrompt = `You are a study-schedule planner for an exam preparation platform.
Respond with a JSON array only, no prose and no markdown fences. Each element:
{"courseId": "<uuid>", "lessonId": "<uuid, optional>", "scheduledAt": "<RFC3339 timestamp>",
 "duration": <minutes>, "type": "lesson|assessment|review|practice",
 "priority": <1-10>, "aiRecommendation": "<one short sentence>"}`

const pathSystemPrompt = `You are a study-path planner for an exam preparation platform.
Respond with a JSON object only, no prose and no markdown fences:
{"phases": [{"name": "<string>", "weeks": <int>, "topics": ["<subject>", ...]}],
 "totalDurationWeeks": <int>}`

type scheduleCourseContext struct {
	CourseID       string  `json:"courseId"`
	Title          string  `json:"title"`
	Subject        string  `json:"subject"`
	CompletionRate float64 `json:"completionRate"`
}

type scheduleResultContext struct {
	Subject     string  `json:"subject"`
	Percent     float64 `json:"percent"`
	CompletedAt string  `json:"completedAt"`
}

// buildSchedulePrompt assembles the structured context for a two-week
// schedule request: profile, weekly availability, per-course completion
// state, the most recent assessment results, and the optional exam date.
func buildSchedulePrompt(profile *types.LearningProfile, slots []*types.AvailabilitySlot, enrollments []*types.Enrollment, recent []*types.AssessmentResult, targetExamDate *time.Time) string {
	courses := make([]scheduleCourseContext, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		courses = append(courses, scheduleCourseContext{
			CourseID:       e.CourseID.String(),
			Title:          e.Course.Title,
			Subject:        e.Course.Subject,
			CompletionRate: e.CompletionRate(),
		})
	}

	results := make([]scheduleResultContext, 0, len(recent))
	for _, r := range recent {
		results = append(results, scheduleResultContext{
			Subject:     r.Subject,
			Percent:     r.Ratio() * 100,
			CompletedAt: r.CompletedAt.Format(time.RFC3339),
		})
	}

	var b strings.Builder
	b.WriteString("Plan a 2-week study schedule.\n")
	b.WriteString("Learner profile: " + mustJSON(profile) + "\n")
	b.WriteString("Weekly availability (dayOfWeek 0=Sunday): " + mustJSON(slots) + "\n")
	b.WriteString("Enrolled courses: " + mustJSON(courses) + "\n")
	b.WriteString("Recent assessment results: " + mustJSON(results) + "\n")
	if targetExamDate != nil {
		b.WriteString("Target exam date: " + targetExamDate.Format("2006-01-02") + "\n")
	}
	b.WriteString("Only schedule inside the availability windows. Prioritize weak subjects.\n")
	return b.String()
}

// buildPathPrompt assembles the context for a learning-path request: the
// profile, the weakness-sorted incomplete units, and the daily time budget.
func buildPathPrompt(profile *types.LearningProfile, units []types.PathUnit, hoursPerDay float64, targetDate *time.Time) string {
	var b strings.Builder
	b.WriteString("Order the remaining curriculum into study phases.\n")
	b.WriteString("Learner profile: " + mustJSON(profile) + "\n")
	b.WriteString("Incomplete units, weakest subjects first: " + mustJSON(units) + "\n")
	b.WriteString(fmt.Sprintf("Available hours per day: %.1f\n", hoursPerDay))
	if targetDate != nil {
		b.WriteString("Target date: " + targetDate.Format("2006-01-02") + "\n")
	}
	return b.String()
}
