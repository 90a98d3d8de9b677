package domain

import (
	"time"
)

// Severity describes how intense a set of symptoms is.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// RiskLevel is the triage urgency classification driving the recommended action.
type RiskLevel string

const (
	// RiskLow means self-care and monitoring are sufficient.
	RiskLow RiskLevel = "low"
	// RiskMedium means evaluation is recommended within 24-48 hours.
	RiskMedium RiskLevel = "medium"
	// RiskEmergency means life-threatening indicators are present.
	RiskEmergency RiskLevel = "emergency"
)

// Probability is the likelihood tier attached to a suspected condition.
type Probability string

const (
	ProbabilityLow    Probability = "low"
	ProbabilityMedium Probability = "medium"
	ProbabilityHigh   Probability = "high"
)

// User represents a registered account.
type User struct {
	ID           uint       `json:"id"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"-"`
	DeletedAt    *time.Time `json:"-"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Age          *int       `json:"age,omitempty"`
	Gender       string     `json:"gender,omitempty"`
}

// HealthRecord is a reference corpus entry used as few-shot context when
// prompting the model. Records are loaded once at startup and never mutated.
type HealthRecord struct {
	ID                  string    `json:"id"`
	Complaint           string    `json:"complaint"`
	Symptoms            []string  `json:"symptoms"`
	Severity            Severity  `json:"severity"`
	Duration            string    `json:"duration"`
	Onset               string    `json:"onset"`
	Triggers            []string  `json:"triggers"`
	Relief              []string  `json:"relief"`
	Age                 int       `json:"age"`
	Sex                 string    `json:"sex"`
	Comorbidities       []string  `json:"comorbidities"`
	RiskLevel           RiskLevel `json:"riskLevel"`
	RecommendedAction   string    `json:"recommendedAction"`
	SuspectedConditions []string  `json:"suspectedConditions"`
}

// ChatMessage is one turn in a symptom-checker conversation.
type ChatMessage struct {
	ID        uint      `json:"id"`
	SessionID string    `json:"sessionId"`
	UserID    *uint     `json:"userId,omitempty"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

// SuspectedCondition is one candidate diagnosis returned by the model.
type SuspectedCondition struct {
	Name        string      `json:"name"`
	Probability Probability `json:"probability"`
	Description string      `json:"description"`
}

// AnalysisResult is the validated output of a triage call. Every field has a
// safe default so the API never surfaces an empty risk assessment.
type AnalysisResult struct {
	Symptoms            []string             `json:"symptoms"`
	Severity            Severity             `json:"severity"`
	Duration            string               `json:"duration"`
	Onset               string               `json:"onset"`
	Triggers            []string             `json:"triggers"`
	Relief              []string             `json:"relief"`
	RiskLevel           RiskLevel            `json:"riskLevel"`
	RecommendedAction   string               `json:"recommendedAction"`
	SuspectedConditions []SuspectedCondition `json:"suspectedConditions"`
	Disclaimer          string               `json:"disclaimer"`
}

// PatientInfo is the optional context a caller may attach to a complaint.
type PatientInfo struct {
	Age                int      `json:"age,omitempty"`
	Sex                string   `json:"sex,omitempty"`
	ExistingConditions []string `json:"existingConditions,omitempty"`
}

// StoredAnalysis is an AnalysisResult persisted for an authenticated user.
type StoredAnalysis struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"userId"`
	SessionID string         `json:"sessionId,omitempty"`
	Complaint string         `json:"complaint"`
	Result    AnalysisResult `json:"result"`
	CreatedAt time.Time      `json:"createdAt"`
}

// NutritionLog captures a day's food intake.
type NutritionLog struct {
	Meals        []string `json:"meals"`
	WaterGlasses int      `json:"waterGlasses"`
	Notes        string   `json:"notes,omitempty"`
}

// SleepLog captures a night's sleep.
type SleepLog struct {
	Hours      float64 `json:"hours"`
	Quality    int     `json:"quality"` // 1-10
	Notes      string  `json:"notes,omitempty"`
	WokeRested bool    `json:"wokeRested"`
}

// ExerciseLog captures a day's activity.
type ExerciseLog struct {
	Steps          int    `json:"steps"`
	WorkoutMinutes int    `json:"workoutMinutes"`
	WorkoutType    string `json:"workoutType,omitempty"`
}

// MedicationLog captures adherence for a day.
type MedicationLog struct {
	Taken  []string `json:"taken"`
	Missed []string `json:"missed"`
	Notes  string   `json:"notes,omitempty"`
}

// MoodLog captures self-reported mood for a day.
type MoodLog struct {
	StressLevel int    `json:"stressLevel"` // 1-10
	MoodRating  int    `json:"moodRating"`  // 1-10
	Notes       string `json:"notes,omitempty"`
}

// HabitLog is one user's self-reported health metrics for a single day.
// Each day is a new record; entries are never mutated after creation.
type HabitLog struct {
	ID         uint           `json:"id"`
	UserID     uint           `json:"userId"`
	Date       string         `json:"date"` // YYYY-MM-DD
	Nutrition  *NutritionLog  `json:"nutrition,omitempty"`
	Sleep      *SleepLog      `json:"sleep,omitempty"`
	Exercise   *ExerciseLog   `json:"exercise,omitempty"`
	Medication *MedicationLog `json:"medication,omitempty"`
	Mood       *MoodLog       `json:"mood,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// HabitInsight is one generated observation about a day's habits.
type HabitInsight struct {
	Message string `json:"message"`
	Type    string `json:"type"` // "positive", "warning" or "info"
	Score   int    `json:"score"`
}

// HabitSummary aggregates a user's logs over a date range.
type HabitSummary struct {
	Days         int      `json:"days"`
	AverageScore float64  `json:"averageScore"`
	AverageSleep float64  `json:"averageSleep"`
	AverageSteps float64  `json:"averageSteps"`
	AverageMeals float64  `json:"averageMeals"`
	AverageMood  float64  `json:"averageMood"`
	Insights     []string `json:"insights"`
	StreakDays   int      `json:"streakDays"`
}
