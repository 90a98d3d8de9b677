package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/healthmate/healthmate/internal/domain"
	"github.com/healthmate/healthmate/internal/logger"
	"github.com/healthmate/healthmate/internal/refdata"
)

const (
	// maxPromptReferences caps how many matched records go into the prompt.
	maxPromptReferences = 3
	// maxSuspectedConditions caps the condition list returned to the caller.
	maxSuspectedConditions = 5

	fallbackAction     = "We could not complete an automated assessment. Please consult a healthcare professional about your symptoms, especially if they are severe or getting worse."
	fallbackDisclaimer = "The analysis service is temporarily unavailable. This is not a medical diagnosis; when in doubt, contact a doctor or your local emergency number."
	defaultDisclaimer  = "This is not a medical diagnosis. Always consult a healthcare professional about your symptoms."
)

// fallbackKeywords is the fixed list scanned against the raw complaint when
// the provider call fails.
var fallbackKeywords = []string{
	"fever", "cough", "headache", "nausea", "vomiting", "diarrhea",
	"chest pain", "shortness of breath", "dizziness", "fatigue",
	"rash", "sore throat", "back pain", "abdominal pain", "bleeding",
	"numbness", "swelling", "palpitations", "anxiety", "insomnia",
}

// AnalysisService orchestrates a triage call: reference matching, prompt
// construction, the provider call and response validation.
type AnalysisService struct {
	generator domain.TextGenerator
	corpus    *refdata.Corpus
	timeout   time.Duration
}

func NewAnalysisService(generator domain.TextGenerator, corpus *refdata.Corpus, timeout time.Duration) *AnalysisService {
	return &AnalysisService{
		generator: generator,
		corpus:    corpus,
		timeout:   timeout,
	}
}

// rawAnalysis mirrors the JSON shape requested from the model. Everything is
// untrusted until coerced field by field.
type rawAnalysis struct {
	Symptoms            []string       `json:"symptoms"`
	Severity            string         `json:"severity"`
	Duration            string         `json:"duration"`
	Onset               string         `json:"onset"`
	Triggers            []string       `json:"triggers"`
	Relief              []string       `json:"relief"`
	RiskLevel           string         `json:"riskLevel"`
	RecommendedAction   string         `json:"recommendedAction"`
	SuspectedConditions []rawCondition `json:"suspectedConditions"`
	Disclaimer          string         `json:"disclaimer"`
}

type rawCondition struct {
	Name        string `json:"name"`
	Probability string `json:"probability"`
	Description string `json:"description"`
}

// Analyze runs the full triage pipeline. It never returns an error: any
// failure along the way degrades to a conservative fallback result that
// directs the user to a clinician.
func (s *AnalysisService) Analyze(ctx context.Context, complaint string, info *domain.PatientInfo) *domain.AnalysisResult {
	result, err := s.analyze(ctx, complaint, info)
	if err != nil {
		logger.Error("Symptom analysis failed, serving fallback", "error", err.Error())
		return s.fallbackResult(complaint)
	}
	return result
}

func (s *AnalysisService) analyze(ctx context.Context, complaint string, info *domain.PatientInfo) (*domain.AnalysisResult, error) {
	references := s.corpus.Match(complaint)
	if len(references) > maxPromptReferences {
		references = references[:maxPromptReferences]
	}

	prompt := buildTriagePrompt(complaint, info, references)

	// Single attempt, bounded; failures route to the fallback path.
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(callCtx, triageSystemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("provider call failed: %w", err)
	}

	jsonStr := extractJSON(text)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object in provider response")
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}

	return coerceAnalysis(&raw, complaint), nil
}

// coerceAnalysis validates the untrusted provider payload field by field,
// substituting safe defaults for anything missing or out of range.
func coerceAnalysis(raw *rawAnalysis, complaint string) *domain.AnalysisResult {
	result := &domain.AnalysisResult{
		Symptoms:          raw.Symptoms,
		Severity:          coerceSeverity(raw.Severity),
		Duration:          raw.Duration,
		Onset:             raw.Onset,
		Triggers:          raw.Triggers,
		Relief:            raw.Relief,
		RiskLevel:         coerceRiskLevel(raw.RiskLevel),
		RecommendedAction: strings.TrimSpace(raw.RecommendedAction),
		Disclaimer:        strings.TrimSpace(raw.Disclaimer),
	}

	if len(result.Symptoms) == 0 {
		result.Symptoms = extractKeywordSymptoms(complaint)
	}
	if result.RecommendedAction == "" {
		result.RecommendedAction = fallbackAction
	}
	if result.Disclaimer == "" {
		result.Disclaimer = defaultDisclaimer
	}
	if result.Triggers == nil {
		result.Triggers = []string{}
	}
	if result.Relief == nil {
		result.Relief = []string{}
	}

	conditions := raw.SuspectedConditions
	if len(conditions) > maxSuspectedConditions {
		conditions = conditions[:maxSuspectedConditions]
	}
	result.SuspectedConditions = make([]domain.SuspectedCondition, 0, len(conditions))
	for _, c := range conditions {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		result.SuspectedConditions = append(result.SuspectedConditions, domain.SuspectedCondition{
			Name:        c.Name,
			Probability: coerceProbability(c.Probability),
			Description: c.Description,
		})
	}

	return result
}

func coerceSeverity(value string) domain.Severity {
	switch domain.Severity(strings.ToLower(strings.TrimSpace(value))) {
	case domain.SeverityMild:
		return domain.SeverityMild
	case domain.SeveritySevere:
		return domain.SeveritySevere
	case domain.SeverityModerate:
		return domain.SeverityModerate
	default:
		return domain.SeverityModerate
	}
}

func coerceRiskLevel(value string) domain.RiskLevel {
	switch domain.RiskLevel(strings.ToLower(strings.TrimSpace(value))) {
	case domain.RiskLow:
		return domain.RiskLow
	case domain.RiskEmergency:
		return domain.RiskEmergency
	case domain.RiskMedium:
		return domain.RiskMedium
	default:
		return domain.RiskMedium
	}
}

func coerceProbability(value string) domain.Probability {
	switch domain.Probability(strings.ToLower(strings.TrimSpace(value))) {
	case domain.ProbabilityLow:
		return domain.ProbabilityLow
	case domain.ProbabilityHigh:
		return domain.ProbabilityHigh
	default:
		return domain.ProbabilityMedium
	}
}

// fallbackResult is the hard safety net: symptom checking must degrade to
// "see a doctor" rather than fail.
func (s *AnalysisService) fallbackResult(complaint string) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Symptoms:            extractKeywordSymptoms(complaint),
		Severity:            domain.SeverityModerate,
		RiskLevel:           domain.RiskMedium,
		Triggers:            []string{},
		Relief:              []string{},
		RecommendedAction:   fallbackAction,
		SuspectedConditions: []domain.SuspectedCondition{},
		Disclaimer:          fallbackDisclaimer,
	}
}

func extractKeywordSymptoms(complaint string) []string {
	lower := strings.ToLower(complaint)
	symptoms := make([]string, 0, 4)
	for _, keyword := range fallbackKeywords {
		if strings.Contains(lower, keyword) {
			symptoms = append(symptoms, keyword)
		}
	}
	return symptoms
}
