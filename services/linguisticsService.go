package services

import (
	"strings"

	"github.com/mryasheyt/Logic-loop-jklu/models"
)

// Deviation / risk policy thresholds. Tunable, but they stay named constants:
// markedly shorter sentences and a collapsed positive-word ratio are documented
// linguistic markers of depressive and crisis states.
const (
	minBaselineSamples = 5 // below this the baseline is statistically unreliable

	sentenceLengthDropThreshold = -0.3 // sentences 30%+ shorter than baseline
	positiveRatioDropThreshold  = -0.4 // positive-word ratio dropped 40%+

	crisisSentimentThreshold   = -0.5 // absolute sentiment floor for deviation
	severeSentimentThreshold   = -0.6 // with a crisis keyword, forces high risk
	moderateSentimentThreshold = -0.4
	lowSentimentThreshold      = -0.2

	positiveTokenThreshold = 0.1 // per-token compound above this counts as positive
	neutralPositiveRatio   = 0.5 // prior for empty input

	negativeWordRiskCount = 3
	absolutistRiskCount   = 3
)

// AnalyzeText extracts linguistic crisis indicators from one message.
// Pure apart from the sentiment scorer; empty input yields zeroed counts and
// neutral sentiment rather than an error.
func AnalyzeText(text string) models.MessageAnalysis {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)

	sentenceCount := 0
	for _, s := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(s) != "" {
			sentenceCount++
		}
	}

	avgSentenceLength := float64(len(words)) / float64(max(sentenceCount, 1))

	negCount := 0
	absolutistCount := 0
	for _, w := range words {
		if _, ok := negativeSet[w]; ok {
			negCount++
		}
		if _, ok := absolutistSet[w]; ok {
			absolutistCount++
		}
	}

	found := []string{}
	for _, kw := range crisisKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}

	sentimentScore := 0.0
	if strings.TrimSpace(text) != "" {
		sentimentScore = compoundScore(text)
	}

	positiveRatio := neutralPositiveRatio
	if len(words) > 0 {
		positive := 0
		for _, w := range words {
			if compoundScore(w) > positiveTokenThreshold {
				positive++
			}
		}
		positiveRatio = float64(positive) / float64(len(words))
	}

	return models.MessageAnalysis{
		SentenceCount:     sentenceCount,
		WordCount:         len(words),
		AvgSentenceLength: avgSentenceLength,
		NegativeWordCount: negCount,
		CrisisKeywords:    found,
		AbsolutistCount:   absolutistCount,
		SentimentScore:    sentimentScore,
		PositiveWordRatio: positiveRatio,
	}
}

// ComputeDeviation compares a message analysis against the user's baseline.
// With fewer than minBaselineSamples samples the relative thresholds are
// ignored and only absolute crisis signals count.
func ComputeDeviation(analysis models.MessageAnalysis, baseline models.LinguisticBaseline) models.Deviation {
	if baseline.SamplesCollected < minBaselineSamples {
		return models.Deviation{
			SentenceLengthDeviation: 0,
			PositiveRatioDeviation:  0,
			IsDeviating:             len(analysis.CrisisKeywords) > 0 || analysis.SentimentScore < crisisSentimentThreshold,
		}
	}

	sentenceLengthDeviation := 0.0
	if baseline.AvgSentenceLength > 0 {
		sentenceLengthDeviation = (analysis.AvgSentenceLength - baseline.AvgSentenceLength) / baseline.AvgSentenceLength
	}

	positiveRatioDeviation := 0.0
	if baseline.PositiveWordRatio > 0 {
		positiveRatioDeviation = (analysis.PositiveWordRatio - baseline.PositiveWordRatio) / baseline.PositiveWordRatio
	}

	isDeviating := sentenceLengthDeviation < sentenceLengthDropThreshold ||
		positiveRatioDeviation < positiveRatioDropThreshold ||
		len(analysis.CrisisKeywords) > 0 ||
		analysis.SentimentScore < crisisSentimentThreshold

	return models.Deviation{
		SentenceLengthDeviation: sentenceLengthDeviation,
		PositiveRatioDeviation:  positiveRatioDeviation,
		IsDeviating:             isDeviating,
	}
}

type riskRule struct {
	level   string
	matches func(a models.MessageAnalysis, d models.Deviation) bool
}

// riskRules is the triage cascade, most severe first; the first matching rule
// wins. Any crisis keyword alone can never classify below moderate, and two or
// more always force high regardless of sentiment.
var riskRules = []riskRule{
	{models.RiskHigh, func(a models.MessageAnalysis, d models.Deviation) bool {
		return len(a.CrisisKeywords) >= 2 ||
			(len(a.CrisisKeywords) >= 1 && a.SentimentScore < severeSentimentThreshold)
	}},
	{models.RiskModerate, func(a models.MessageAnalysis, d models.Deviation) bool {
		return len(a.CrisisKeywords) >= 1 || d.IsDeviating || a.SentimentScore < moderateSentimentThreshold
	}},
	{models.RiskLow, func(a models.MessageAnalysis, d models.Deviation) bool {
		return a.NegativeWordCount >= negativeWordRiskCount ||
			a.AbsolutistCount >= absolutistRiskCount ||
			a.SentimentScore < lowSentimentThreshold
	}},
}

// AssessRisk maps an analysis plus its deviation to a discrete risk level.
func AssessRisk(analysis models.MessageAnalysis, deviation models.Deviation) string {
	for _, rule := range riskRules {
		if rule.matches(analysis, deviation) {
			return rule.level
		}
	}
	return models.RiskNone
}

// UpdateBaseline folds one new sample into the rolling baseline with an online
// running mean; it never re-reads past messages. AvgResponseTimeMs is updated
// by a separate mechanism and passes through unchanged.
func UpdateBaseline(baseline models.LinguisticBaseline, sample models.MessageAnalysis) models.LinguisticBaseline {
	n := float64(baseline.SamplesCollected)
	return models.LinguisticBaseline{
		AvgSentenceLength: (baseline.AvgSentenceLength*n + sample.AvgSentenceLength) / (n + 1),
		AvgResponseTimeMs: baseline.AvgResponseTimeMs,
		PositiveWordRatio: (baseline.PositiveWordRatio*n + sample.PositiveWordRatio) / (n + 1),
		SamplesCollected:  baseline.SamplesCollected + 1,
	}
}
