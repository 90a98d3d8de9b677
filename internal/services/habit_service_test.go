package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/healthmate/healthmate/internal/domain"
)

func perfectDay(date string) domain.HabitLog {
	return domain.HabitLog{
		UserID:    1,
		Date:      date,
		Sleep:     &domain.SleepLog{Hours: 8, Quality: 9},
		Exercise:  &domain.ExerciseLog{Steps: 10000},
		Nutrition: &domain.NutritionLog{Meals: []string{"breakfast", "lunch", "dinner"}},
		Mood:      &domain.MoodLog{MoodRating: 10, StressLevel: 2},
	}
}

func TestScoreLogPerfectDayIs100(t *testing.T) {
	log := perfectDay("2026-08-31")
	if got := ScoreLog(&log); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestScoreLogEmptyDayIsZero(t *testing.T) {
	log := domain.HabitLog{Date: "2026-08-31"}
	if got := ScoreLog(&log); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestScoreLogCapsEachFactor(t *testing.T) {
	log := domain.HabitLog{
		Sleep:    &domain.SleepLog{Hours: 12},
		Exercise: &domain.ExerciseLog{Steps: 30000},
	}
	if got := ScoreLog(&log); got != 50 {
		t.Fatalf("oversleeping and overstepping must cap at 25 each, got %d", got)
	}
}

func TestScoreLogPartial(t *testing.T) {
	log := domain.HabitLog{
		Sleep: &domain.SleepLog{Hours: 4}, // 12.5 -> rounds to 13 in total
		Mood:  &domain.MoodLog{MoodRating: 8},
	}
	if got := ScoreLog(&log); got != 33 {
		t.Fatalf("expected 33 (12.5+20 rounded), got %d", got)
	}
}

func TestStreakStopsAtFirstGap(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	day := func(offset int) string { return now.AddDate(0, 0, -offset).Format(dateLayout) }

	logs := []domain.HabitLog{
		{Date: day(0)},
		{Date: day(1)},
		{Date: day(3)}, // gap on day 2
	}
	if got := streakDays(logs, now); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestStreakSurvivesUnloggedToday(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	day := func(offset int) string { return now.AddDate(0, 0, -offset).Format(dateLayout) }

	logs := []domain.HabitLog{
		{Date: day(1)},
		{Date: day(2)},
	}
	if got := streakDays(logs, now); got != 2 {
		t.Fatalf("a day not yet logged today should not break the streak, got %d", got)
	}
}

func TestStreakEmpty(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	if got := streakDays(nil, now); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestSummarizeSkipsMissingFactors(t *testing.T) {
	logs := []domain.HabitLog{
		{Date: "2026-08-30", Sleep: &domain.SleepLog{Hours: 6}},
		{Date: "2026-08-29", Sleep: &domain.SleepLog{Hours: 8}},
		{Date: "2026-08-28"}, // no sleep data; must not drag the average down
	}
	summary := summarizeLogs(logs)

	if summary.AverageSleep != 7 {
		t.Fatalf("expected sleep average 7 over two logged days, got %f", summary.AverageSleep)
	}
	if summary.Days != 3 {
		t.Fatalf("expected 3 days, got %d", summary.Days)
	}
}

func TestSummarizeInsightOrderAndCap(t *testing.T) {
	// Low sleep, high steps, low mood and a low overall score would produce
	// four insights; only three may surface, in category order.
	logs := []domain.HabitLog{
		{
			Date:     "2026-08-30",
			Sleep:    &domain.SleepLog{Hours: 5},
			Exercise: &domain.ExerciseLog{Steps: 12000},
			Mood:     &domain.MoodLog{MoodRating: 3},
		},
	}
	summary := summarizeLogs(logs)

	if len(summary.Insights) != 3 {
		t.Fatalf("expected exactly 3 insights, got %d: %v", len(summary.Insights), summary.Insights)
	}
	if !strings.Contains(summary.Insights[0], "sleep") {
		t.Fatalf("first insight should be the sleep one, got %q", summary.Insights[0])
	}
	if !strings.Contains(summary.Insights[1], "steps") {
		t.Fatalf("second insight should be the exercise one, got %q", summary.Insights[1])
	}
}

func TestSummarizeFlagsConsistentlyLowScores(t *testing.T) {
	logs := []domain.HabitLog{
		{Date: "2026-08-30", Sleep: &domain.SleepLog{Hours: 8}},
		{Date: "2026-08-29", Sleep: &domain.SleepLog{Hours: 8}},
		{Date: "2026-08-28", Sleep: &domain.SleepLog{Hours: 8}},
	}
	summary := summarizeLogs(logs)

	found := false
	for _, insight := range summary.Insights {
		if strings.Contains(insight, "consultation") {
			found = true
		}
	}
	if !found {
		t.Fatalf("three consecutive sub-60 scores should flag a consultation, got %v", summary.Insights)
	}
}

func TestSummarizeOutstanding(t *testing.T) {
	logs := []domain.HabitLog{perfectDay("2026-08-30")}
	summary := summarizeLogs(logs)

	found := false
	for _, insight := range summary.Insights {
		if strings.Contains(insight, "Outstanding") {
			found = true
		}
	}
	if !found {
		t.Fatalf("score >= 85 should produce the outstanding insight, got %v", summary.Insights)
	}
}

func TestAnalyzeLogUsesProviderInsight(t *testing.T) {
	gen := &fakeGenerator{response: `{"message": "Great steps today, keep it up!", "type": "positive"}`}
	svc := NewHabitService(newFakeHabitRepo(), gen, 5*time.Second)

	log := perfectDay("2026-08-31")
	insight := svc.AnalyzeLog(context.Background(), &log)

	if insight.Message != "Great steps today, keep it up!" {
		t.Fatalf("unexpected message %q", insight.Message)
	}
	if insight.Type != "positive" {
		t.Fatalf("unexpected type %q", insight.Type)
	}
	if insight.Score != 100 {
		t.Fatalf("expected score 100, got %d", insight.Score)
	}
}

func TestAnalyzeLogFallsBackOnProviderError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("timeout")}
	svc := NewHabitService(newFakeHabitRepo(), gen, 5*time.Second)

	log := perfectDay("2026-08-31")
	insight := svc.AnalyzeLog(context.Background(), &log)

	if insight == nil || insight.Message == "" {
		t.Fatal("fallback insight must not be empty")
	}
	if insight.Score != 100 {
		t.Fatalf("score is computed locally and must survive provider failure, got %d", insight.Score)
	}
	if insight.Type != "positive" {
		t.Fatalf("a 100 score should produce a positive fallback, got %q", insight.Type)
	}
}

func TestCreateLogValidatesDate(t *testing.T) {
	svc := NewHabitService(newFakeHabitRepo(), &fakeGenerator{}, time.Second)

	err := svc.CreateLog(context.Background(), &domain.HabitLog{UserID: 1, Date: "31/08/2026"})
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestCreateLogDefaultsDateToToday(t *testing.T) {
	repo := newFakeHabitRepo()
	svc := NewHabitService(repo, &fakeGenerator{}, time.Second)
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC) }

	log := &domain.HabitLog{UserID: 1}
	if err := svc.CreateLog(context.Background(), log); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Date != "2026-08-31" {
		t.Fatalf("expected today's date, got %s", log.Date)
	}
}

func TestDuplicateSameDayLogsAreAccepted(t *testing.T) {
	repo := newFakeHabitRepo()
	svc := NewHabitService(repo, &fakeGenerator{}, time.Second)

	first := perfectDay("2026-08-31")
	second := perfectDay("2026-08-31")
	if err := svc.CreateLog(context.Background(), &first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.CreateLog(context.Background(), &second); err != nil {
		t.Fatalf("duplicate same-day submission must be accepted: %v", err)
	}

	logs, err := svc.ListLogs(context.Background(), 1, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(logs))
	}
}
