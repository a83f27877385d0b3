package detection

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/SakethSumanBathini/scam-shield-api/internal/extraction"
)

var tracer = otel.Tracer("scamshield.internal.detection")

// ThreatLevel buckets a confidence score for reporting.
type ThreatLevel string

const (
	ThreatCritical ThreatLevel = "CRITICAL"
	ThreatHigh     ThreatLevel = "HIGH"
	ThreatMedium   ThreatLevel = "MEDIUM"
	ThreatLow      ThreatLevel = "LOW"
	ThreatSafe     ThreatLevel = "SAFE"
)

// Messages at or above this confidence count as a detected scam.
const scamThreshold = 0.25

const (
	knownActorBonus         = 0.30
	multipleIndicatorsBonus = 0.10
	maxReportedKeywords     = 15
)

// knownScamPhones holds numbers previously reported as scam callers,
// keyed by their last ten digits.
var knownScamPhones = map[string]struct{}{
	"9876543210": {},
	"8888777766": {},
	"9999888877": {},
	"7777666655": {},
	"1800123456": {},
}

var nonDigitRE = regexp.MustCompile(`[^\d]`)

// RiskBreakdown itemizes how a confidence score was assembled. Values
// are expressed on a 0-100 scale for display.
type RiskBreakdown struct {
	KeywordScore            float64 `json:"keywordScore"`
	PatternScore            float64 `json:"patternScore"`
	KnownScammerBonus       int     `json:"knownScammerBonus"`
	MultipleIndicatorsBonus int     `json:"multipleIndicatorsBonus"`
	TotalScore              float64 `json:"totalScore"`
}

// DetailedBreakdown carries the per-category evidence behind a result.
type DetailedBreakdown struct {
	KeywordsByCategory   map[string][]string `json:"keywordsByCategory"`
	PatternsByCategory   map[string][]string `json:"patternsByCategory"`
	TotalKeywordsFound   int                 `json:"totalKeywordsFound"`
	TotalPatternsMatched int                 `json:"totalPatternsMatched"`
}

// Result is the outcome of analyzing one message in its conversation
// context.
type Result struct {
	ScamDetected        bool               `json:"scamDetected"`
	ScamCategory        *string            `json:"scamCategory"`
	ConfidenceScore     float64            `json:"confidenceScore"`
	ThreatLevel         ThreatLevel        `json:"threatLevel"`
	DetectedKeywords    []string           `json:"detectedKeywords"`
	AnalysisTimestamp   string             `json:"analysisTimestamp"`
	DetectedLanguage    string             `json:"detectedLanguage"`
	IsKnownScammer      bool               `json:"isKnownScammer"`
	RiskBreakdown       RiskBreakdown      `json:"riskBreakdown"`
	TriggeredCategories map[string]int     `json:"triggeredCategories"`
	DetailedBreakdown   *DetailedBreakdown `json:"detailedBreakdown,omitempty"`
}

// ThreatLevelFor maps a confidence score to its reporting bucket.
func ThreatLevelFor(confidence float64) ThreatLevel {
	switch {
	case confidence >= 0.8:
		return ThreatCritical
	case confidence >= 0.6:
		return ThreatHigh
	case confidence >= 0.4:
		return ThreatMedium
	case confidence >= 0.2:
		return ThreatLow
	default:
		return ThreatSafe
	}
}

// IsKnownScamPhone reports whether any extracted phone matches the
// known scam caller list on its last ten digits.
func IsKnownScamPhone(phones []string) bool {
	for _, phone := range phones {
		digits := nonDigitRE.ReplaceAllString(phone, "")
		if len(digits) > 10 {
			digits = digits[len(digits)-10:]
		}
		if _, ok := knownScamPhones[digits]; ok {
			return true
		}
	}
	return false
}

// Analyze scores text against the keyword tables and pattern rules.
// Scoring runs over the whole conversation (history plus the current
// message), while language detection looks at the current message only.
func Analyze(ctx context.Context, text string, history []string) Result {
	_, span := tracer.Start(ctx, "detection.analyze")
	defer span.End()

	fullText := strings.Join(history, " ") + " " + text

	kwScore, keywords, categoryHits := KeywordScore(fullText)
	category, patScore, _ := PatternScore(fullText)

	phones := extraction.ExtractPhones(fullText)
	knownScammer := IsKnownScamPhone(phones)

	confidence := kwScore*0.4 + patScore*0.6
	if len(keywords) > 5 {
		confidence = math.Min(confidence+multipleIndicatorsBonus, 1.0)
	}
	if knownScammer {
		confidence = math.Min(confidence+knownActorBonus, 1.0)
	}

	breakdown := RiskBreakdown{
		KeywordScore: round1(kwScore * 100),
		PatternScore: round1(patScore * 100),
		TotalScore:   round1(confidence * 100),
	}
	if knownScammer {
		breakdown.KnownScammerBonus = 30
	}
	if len(keywords) > 5 {
		breakdown.MultipleIndicatorsBonus = 10
	}

	triggered := make(map[string]int)
	for cat, hits := range categoryHits {
		if len(hits) > 0 {
			triggered[cat] = len(hits)
		}
	}

	reported := keywords
	if len(reported) > maxReportedKeywords {
		reported = reported[:maxReportedKeywords]
	}

	var scamCategory *string
	if category != CategoryUnknown {
		name := string(category)
		scamCategory = &name
	}

	span.SetAttributes(
		attribute.Bool("detection.scam_detected", confidence >= scamThreshold),
		attribute.String("detection.category", string(category)),
		attribute.Float64("detection.confidence", round2(confidence)),
		attribute.String("detection.threat_level", string(ThreatLevelFor(confidence))),
		attribute.Bool("detection.known_scammer", knownScammer),
	)

	return Result{
		ScamDetected:        confidence >= scamThreshold,
		ScamCategory:        scamCategory,
		ConfidenceScore:     round2(confidence),
		ThreatLevel:         ThreatLevelFor(confidence),
		DetectedKeywords:    reported,
		AnalysisTimestamp:   time.Now().Format(time.RFC3339),
		DetectedLanguage:    DetectLanguage(text),
		IsKnownScammer:      knownScammer,
		RiskBreakdown:       breakdown,
		TriggeredCategories: triggered,
	}
}

// AnalyzeDetailed runs Analyze and attaches the per-category keyword
// and pattern evidence.
func AnalyzeDetailed(ctx context.Context, text string, history []string) Result {
	result := Analyze(ctx, text, history)

	fullText := strings.Join(history, " ") + " " + text
	_, _, categoryHits := KeywordScore(fullText)
	_, _, patternMatches := PatternScore(fullText)

	detail := &DetailedBreakdown{
		KeywordsByCategory: make(map[string][]string),
		PatternsByCategory: make(map[string][]string),
	}
	for cat, hits := range categoryHits {
		if len(hits) > 0 {
			detail.KeywordsByCategory[cat] = hits
			detail.TotalKeywordsFound += len(hits)
		}
	}
	for cat, pats := range patternMatches {
		if len(pats) > 0 {
			detail.PatternsByCategory[cat] = pats
			detail.TotalPatternsMatched += len(pats)
		}
	}
	result.DetailedBreakdown = detail

	return result
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
