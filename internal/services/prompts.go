package services

import (
	"fmt"
	"strings"

	"github.com/healthmate/healthmate/internal/domain"
)

// prompts.go holds the prompt templates sent to the generative model.
// Keeping them in one file makes them easy to tune without touching the
// orchestration code.

const triageSystemInstruction = `You are a cautious medical triage assistant. You help users understand their symptoms but you NEVER diagnose. You always err on the side of caution: when in doubt between two risk levels, pick the higher one.

RISK LEVEL DEFINITIONS:
- "emergency": life-threatening indicators such as chest pain, difficulty breathing, severe bleeding, loss of consciousness, or stroke signs (facial drooping, slurred speech, one-sided weakness). The user must seek immediate care.
- "medium": symptoms that warrant evaluation by a clinician within 24-48 hours.
- "low": symptoms manageable with self-care and monitoring.

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a single valid JSON object
- Do not include markdown formatting or any text before or after the JSON
- The JSON must have these exact fields:
  {
    "symptoms": ["symptom1", "symptom2"],
    "severity": "mild|moderate|severe",
    "duration": "free text",
    "onset": "free text",
    "triggers": ["trigger1"],
    "relief": ["relief1"],
    "riskLevel": "low|medium|emergency",
    "recommendedAction": "free text",
    "suspectedConditions": [
      {"name": "condition", "probability": "low|medium|high", "description": "one sentence"}
    ],
    "disclaimer": "free text"
  }
- suspectedConditions must contain at most 5 entries
- The disclaimer must state that this is not a medical diagnosis and a healthcare professional should be consulted`

const habitInsightSystemInstruction = `You are a supportive health coach. Given one day of self-reported habit data you return a single short, encouraging, actionable observation.

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a single valid JSON object with exactly these fields:
  {"message": "one sentence, max 140 characters", "type": "positive|warning|info"}
- Never give medical advice beyond general wellness suggestions`

// buildTriagePrompt assembles the user turn: the complaint, optional patient
// context and up to maxPromptReferences reference cases as few-shot examples.
func buildTriagePrompt(complaint string, info *domain.PatientInfo, references []domain.HealthRecord) string {
	var b strings.Builder

	b.WriteString("PATIENT COMPLAINT:\n")
	b.WriteString(complaint)
	b.WriteString("\n")

	if info != nil {
		b.WriteString("\nPATIENT INFO:\n")
		if info.Age > 0 {
			fmt.Fprintf(&b, "- Age: %d\n", info.Age)
		}
		if info.Sex != "" {
			fmt.Fprintf(&b, "- Sex: %s\n", info.Sex)
		}
		if len(info.ExistingConditions) > 0 {
			fmt.Fprintf(&b, "- Existing conditions: %s\n", strings.Join(info.ExistingConditions, ", "))
		}
	}

	if len(references) > 0 {
		b.WriteString("\nSIMILAR REFERENCE CASES (for calibration only, do not copy blindly):\n")
		for i, ref := range references {
			fmt.Fprintf(&b, "Case %d: %q -> symptoms: %s; severity: %s; risk: %s; action: %s\n",
				i+1, ref.Complaint, strings.Join(ref.Symptoms, ", "), ref.Severity, ref.RiskLevel, ref.RecommendedAction)
		}
	}

	b.WriteString("\nAnalyze the complaint and respond with the JSON object described in your instructions.")
	return b.String()
}

// buildHabitInsightPrompt assembles the habit coaching turn from a day's log
// and its locally computed score.
func buildHabitInsightPrompt(log *domain.HabitLog, score int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "TODAY'S HEALTH SCORE: %d/100\n\nLOGGED DATA:\n", score)
	if log.Sleep != nil {
		fmt.Fprintf(&b, "- Sleep: %.1f hours, quality %d/10\n", log.Sleep.Hours, log.Sleep.Quality)
	}
	if log.Exercise != nil {
		fmt.Fprintf(&b, "- Exercise: %d steps, %d workout minutes\n", log.Exercise.Steps, log.Exercise.WorkoutMinutes)
	}
	if log.Nutrition != nil {
		fmt.Fprintf(&b, "- Nutrition: %d meals, %d glasses of water\n", len(log.Nutrition.Meals), log.Nutrition.WaterGlasses)
	}
	if log.Mood != nil {
		fmt.Fprintf(&b, "- Mood: %d/10, stress %d/10\n", log.Mood.MoodRating, log.Mood.StressLevel)
	}
	if log.Medication != nil && len(log.Medication.Missed) > 0 {
		fmt.Fprintf(&b, "- Missed medications: %s\n", strings.Join(log.Medication.Missed, ", "))
	}

	b.WriteString("\nRespond with the JSON object described in your instructions.")
	return b.String()
}
