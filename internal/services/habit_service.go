package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/healthmate/healthmate/internal/domain"
	"github.com/healthmate/healthmate/internal/logger"
)

const dateLayout = "2006-01-02"

// HabitService stores daily habit logs and derives scores, insights, streaks
// and range summaries from them.
type HabitService struct {
	repo      domain.HabitRepository
	generator domain.TextGenerator
	timeout   time.Duration
	now       func() time.Time
}

func NewHabitService(repo domain.HabitRepository, generator domain.TextGenerator, timeout time.Duration) *HabitService {
	return &HabitService{
		repo:      repo,
		generator: generator,
		timeout:   timeout,
		now:       time.Now,
	}
}

// CreateLog validates and stores a day's log. Duplicate submissions for the
// same day are accepted and produce separate records.
func (s *HabitService) CreateLog(ctx context.Context, log *domain.HabitLog) error {
	if log.Date == "" {
		log.Date = s.now().Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, log.Date); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", log.Date, err)
	}
	return s.repo.Create(ctx, log)
}

// ListLogs returns a user's logs, newest date first, optionally bounded by
// an inclusive date range.
func (s *HabitService) ListLogs(ctx context.Context, userID uint, startDate, endDate string) ([]domain.HabitLog, error) {
	return s.repo.ListByUser(ctx, userID, startDate, endDate)
}

// ScoreLog computes the 0-100 composite health score for a single day. Each
// factor contributes at most 25 points; a missing factor contributes 0.
func ScoreLog(log *domain.HabitLog) int {
	var score float64
	if log.Sleep != nil {
		score += math.Min(25, log.Sleep.Hours/8*25)
	}
	if log.Exercise != nil {
		score += math.Min(25, float64(log.Exercise.Steps)/10000*25)
	}
	if log.Nutrition != nil {
		score += math.Min(25, float64(len(log.Nutrition.Meals))/3*25)
	}
	if log.Mood != nil {
		score += float64(log.Mood.MoodRating) / 10 * 25
	}
	return int(math.Round(score))
}

// AnalyzeLog scores a day's log and asks the model for a one-line coaching
// insight. Provider failures degrade to a locally generated message; this
// method never returns an error for AI reasons.
func (s *HabitService) AnalyzeLog(ctx context.Context, log *domain.HabitLog) *domain.HabitInsight {
	score := ScoreLog(log)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(callCtx, habitInsightSystemInstruction, buildHabitInsightPrompt(log, score))
	if err == nil {
		var raw struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		}
		if jsonStr := extractJSON(text); jsonStr != "" {
			if err := json.Unmarshal([]byte(jsonStr), &raw); err == nil && raw.Message != "" {
				return &domain.HabitInsight{
					Message: raw.Message,
					Type:    coerceInsightType(raw.Type),
					Score:   score,
				}
			}
		}
		logger.Warn("Habit insight response was malformed, serving local insight")
	} else {
		logger.Error("Habit insight call failed, serving local insight", "error", err.Error())
	}

	return localInsight(score)
}

func coerceInsightType(value string) string {
	switch value {
	case "positive", "warning", "info":
		return value
	default:
		return "info"
	}
}

func localInsight(score int) *domain.HabitInsight {
	switch {
	case score >= 85:
		return &domain.HabitInsight{
			Message: "Outstanding day! Your sleep, activity, nutrition and mood are all on track.",
			Type:    "positive",
			Score:   score,
		}
	case score >= 60:
		return &domain.HabitInsight{
			Message: "Solid progress today. Small improvements to your weakest habit will push your score higher.",
			Type:    "info",
			Score:   score,
		}
	default:
		return &domain.HabitInsight{
			Message: "Your score is on the low side today. If low days persist, consider discussing it with a healthcare professional.",
			Type:    "warning",
			Score:   score,
		}
	}
}

// Summarize aggregates a user's logs over a range: per-factor averages that
// skip days missing the factor, threshold insights and the current streak.
func (s *HabitService) Summarize(ctx context.Context, userID uint, startDate, endDate string) (*domain.HabitSummary, error) {
	logs, err := s.repo.ListByUser(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	summary := summarizeLogs(logs)
	summary.StreakDays = streakDays(logs, s.now())
	return summary, nil
}

// summarizeLogs computes averages over the provided logs. A day missing a
// factor is excluded from that factor's denominator rather than scored zero.
func summarizeLogs(logs []domain.HabitLog) *domain.HabitSummary {
	summary := &domain.HabitSummary{Days: len(logs), Insights: []string{}}
	if len(logs) == 0 {
		return summary
	}

	var scoreSum, sleepSum, stepsSum, mealsSum, moodSum float64
	var sleepN, stepsN, mealsN, moodN int
	for i := range logs {
		scoreSum += float64(ScoreLog(&logs[i]))
		if logs[i].Sleep != nil {
			sleepSum += logs[i].Sleep.Hours
			sleepN++
		}
		if logs[i].Exercise != nil {
			stepsSum += float64(logs[i].Exercise.Steps)
			stepsN++
		}
		if logs[i].Nutrition != nil {
			mealsSum += float64(len(logs[i].Nutrition.Meals))
			mealsN++
		}
		if logs[i].Mood != nil {
			moodSum += float64(logs[i].Mood.MoodRating)
			moodN++
		}
	}

	summary.AverageScore = scoreSum / float64(len(logs))
	if sleepN > 0 {
		summary.AverageSleep = sleepSum / float64(sleepN)
	}
	if stepsN > 0 {
		summary.AverageSteps = stepsSum / float64(stepsN)
	}
	if mealsN > 0 {
		summary.AverageMeals = mealsSum / float64(mealsN)
	}
	if moodN > 0 {
		summary.AverageMood = moodSum / float64(moodN)
	}

	summary.Insights = rangeInsights(summary, logs, sleepN, stepsN, moodN)
	return summary
}

// rangeInsights surfaces at most three messages in a fixed category order:
// sleep, exercise, mood, overall.
func rangeInsights(summary *domain.HabitSummary, logs []domain.HabitLog, sleepN, stepsN, moodN int) []string {
	insights := make([]string, 0, 3)

	if sleepN > 0 && summary.AverageSleep < 7 {
		insights = append(insights, "You are averaging less than 7 hours of sleep. An earlier bedtime could lift your energy and your score.")
	}
	if len(insights) < 3 && stepsN > 0 && summary.AverageSteps >= 10000 {
		insights = append(insights, "Great work staying active: you are averaging 10,000+ steps a day.")
	}
	if len(insights) < 3 && moodN > 0 && summary.AverageMood < 5 {
		insights = append(insights, "Your mood ratings have been low lately. Consider carving out time for something you enjoy.")
	}
	if len(insights) < 3 {
		switch {
		case summary.AverageScore >= 85:
			insights = append(insights, "Outstanding! Your overall health score is excellent.")
		case summary.AverageScore < 60 || lowStreak(logs, 3, 60):
			insights = append(insights, "Your health score has been consistently low. It may be worth a consultation with a healthcare professional.")
		}
	}

	return insights
}

// lowStreak reports whether the n most recent entries all score below the
// threshold. Logs are expected newest first.
func lowStreak(logs []domain.HabitLog, n, threshold int) bool {
	if len(logs) < n {
		return false
	}
	for i := 0; i < n; i++ {
		if ScoreLog(&logs[i]) >= threshold {
			return false
		}
	}
	return true
}

// streakDays counts consecutive calendar days with at least one log, walking
// backward from today and stopping at the first gap. A day not yet logged
// today does not break a streak that ends yesterday.
func streakDays(logs []domain.HabitLog, now time.Time) int {
	logged := make(map[string]bool, len(logs))
	for _, log := range logs {
		logged[log.Date] = true
	}

	day := now
	if !logged[day.Format(dateLayout)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for logged[day.Format(dateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
