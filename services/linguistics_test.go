package services

import (
	"strings"
	"testing"

	"github.com/mryasheyt/Logic-loop-jklu/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScorer struct {
	scores map[string]float64
}

func (s stubScorer) Compound(text string) float64 {
	return s.scores[strings.ToLower(text)]
}

// withStubSentiment pins sentiment scores for deterministic assertions and
// restores the real scorer afterwards.
func withStubSentiment(t *testing.T, scores map[string]float64) {
	t.Helper()
	prev := sentimentScorer
	SetSentimentScorer(stubScorer{scores: scores})
	t.Cleanup(func() { SetSentimentScorer(prev) })
}

func TestAnalyzeTextEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		analysis := AnalyzeText(input)

		assert.Equal(t, 0, analysis.SentenceCount)
		assert.Equal(t, 0, analysis.WordCount)
		assert.Equal(t, 0.0, analysis.AvgSentenceLength)
		assert.Equal(t, 0, analysis.NegativeWordCount)
		assert.Empty(t, analysis.CrisisKeywords)
		assert.Equal(t, 0, analysis.AbsolutistCount)
		assert.Equal(t, 0.0, analysis.SentimentScore)
		assert.Equal(t, 0.5, analysis.PositiveWordRatio, "empty input keeps the neutral prior")
	}
}

func TestAnalyzeTextCounts(t *testing.T) {
	withStubSentiment(t, map[string]float64{})

	analysis := AnalyzeText("I always feel sad and never sleep")

	assert.Equal(t, 1, analysis.SentenceCount)
	assert.Equal(t, 7, analysis.WordCount)
	assert.InDelta(t, 7.0, analysis.AvgSentenceLength, 1e-9)
	assert.Equal(t, 1, analysis.NegativeWordCount) // sad
	assert.Equal(t, 2, analysis.AbsolutistCount)   // always, never
}

func TestAnalyzeTextCrisisPhrases(t *testing.T) {
	withStubSentiment(t, map[string]float64{})

	analysis := AnalyzeText("I want to die. There is no way out.")

	assert.Equal(t, 2, analysis.SentenceCount)
	assert.ElementsMatch(t, []string{"want to die", "no way out"}, analysis.CrisisKeywords)
}

func TestAnalyzeTextPositiveRatio(t *testing.T) {
	withStubSentiment(t, map[string]float64{
		"happy": 0.6,
		"great": 0.7,
	})

	analysis := AnalyzeText("happy great meh nah")

	assert.InDelta(t, 0.5, analysis.PositiveWordRatio, 1e-9)
}

func TestAnalyzeTextSentenceSplitting(t *testing.T) {
	withStubSentiment(t, map[string]float64{})

	// Terminator runs and trailing punctuation produce no empty sentences
	analysis := AnalyzeText("Fine!!! Really?! Sure...")
	assert.Equal(t, 3, analysis.SentenceCount)
}

func TestComputeDeviationInsufficientBaseline(t *testing.T) {
	baseline := models.LinguisticBaseline{
		AvgSentenceLength: 12,
		PositiveWordRatio: 0.6,
		SamplesCollected:  2,
	}

	// Well below the baseline averages, but with too few samples the relative
	// thresholds are ignored entirely.
	calm := models.MessageAnalysis{
		AvgSentenceLength: 2,
		PositiveWordRatio: 0.1,
		SentimentScore:    0,
	}
	deviation := ComputeDeviation(calm, baseline)
	assert.False(t, deviation.IsDeviating)
	assert.Equal(t, 0.0, deviation.SentenceLengthDeviation)
	assert.Equal(t, 0.0, deviation.PositiveRatioDeviation)

	// Absolute crisis signals still register
	crisis := models.MessageAnalysis{CrisisKeywords: []string{"hopeless"}}
	assert.True(t, ComputeDeviation(crisis, baseline).IsDeviating)

	negative := models.MessageAnalysis{SentimentScore: -0.6}
	assert.True(t, ComputeDeviation(negative, baseline).IsDeviating)
}

func TestComputeDeviationRelative(t *testing.T) {
	baseline := models.LinguisticBaseline{
		AvgSentenceLength: 10,
		PositiveWordRatio: 0.5,
		SamplesCollected:  8,
	}

	analysis := models.MessageAnalysis{
		AvgSentenceLength: 6,    // -40% vs baseline
		PositiveWordRatio: 0.45, // -10%
		SentimentScore:    0,
	}
	deviation := ComputeDeviation(analysis, baseline)

	assert.InDelta(t, -0.4, deviation.SentenceLengthDeviation, 1e-9)
	assert.InDelta(t, -0.1, deviation.PositiveRatioDeviation, 1e-9)
	assert.True(t, deviation.IsDeviating, "40% shorter sentences crosses the threshold")

	steady := models.MessageAnalysis{
		AvgSentenceLength: 9.5,
		PositiveWordRatio: 0.48,
		SentimentScore:    0,
	}
	assert.False(t, ComputeDeviation(steady, baseline).IsDeviating)
}

func TestComputeDeviationZeroBaselineValues(t *testing.T) {
	baseline := models.LinguisticBaseline{SamplesCollected: 6}

	analysis := models.MessageAnalysis{AvgSentenceLength: 5, PositiveWordRatio: 0.5}
	deviation := ComputeDeviation(analysis, baseline)

	assert.Equal(t, 0.0, deviation.SentenceLengthDeviation)
	assert.Equal(t, 0.0, deviation.PositiveRatioDeviation)
	assert.False(t, deviation.IsDeviating)
}

func TestAssessRiskCascade(t *testing.T) {
	tests := []struct {
		name      string
		analysis  models.MessageAnalysis
		deviation models.Deviation
		want      string
	}{
		{
			name:     "two crisis keywords force high regardless of sentiment",
			analysis: models.MessageAnalysis{CrisisKeywords: []string{"suicide", "hopeless"}, SentimentScore: 0.9},
			want:     models.RiskHigh,
		},
		{
			name:     "one crisis keyword with severe sentiment is high",
			analysis: models.MessageAnalysis{CrisisKeywords: []string{"worthless"}, SentimentScore: -0.7},
			want:     models.RiskHigh,
		},
		{
			name:     "one crisis keyword alone never drops below moderate",
			analysis: models.MessageAnalysis{CrisisKeywords: []string{"give up"}, SentimentScore: 0.5},
			want:     models.RiskModerate,
		},
		{
			name:      "deviation alone is moderate",
			analysis:  models.MessageAnalysis{},
			deviation: models.Deviation{IsDeviating: true},
			want:      models.RiskModerate,
		},
		{
			name:     "sentiment below -0.4 is moderate",
			analysis: models.MessageAnalysis{SentimentScore: -0.45},
			want:     models.RiskModerate,
		},
		{
			name:     "three negative words is low",
			analysis: models.MessageAnalysis{NegativeWordCount: 3},
			want:     models.RiskLow,
		},
		{
			name:     "three absolutist words is low",
			analysis: models.MessageAnalysis{AbsolutistCount: 3},
			want:     models.RiskLow,
		},
		{
			name:     "mildly negative sentiment is low",
			analysis: models.MessageAnalysis{SentimentScore: -0.25},
			want:     models.RiskLow,
		},
		{
			name:     "neutral message is none",
			analysis: models.MessageAnalysis{SentimentScore: 0.1},
			want:     models.RiskNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssessRisk(tt.analysis, tt.deviation))
		})
	}
}

func TestUpdateBaselineConvergence(t *testing.T) {
	baseline := models.LinguisticBaseline{AvgResponseTimeMs: 4200}
	sample := models.MessageAnalysis{
		AvgSentenceLength: 8.5,
		PositiveWordRatio: 0.42,
	}

	const n = 10
	for i := 0; i < n; i++ {
		baseline = UpdateBaseline(baseline, sample)
	}

	require.Equal(t, n, baseline.SamplesCollected)
	assert.InDelta(t, 8.5, baseline.AvgSentenceLength, 1e-9)
	assert.InDelta(t, 0.42, baseline.PositiveWordRatio, 1e-9)
	assert.Equal(t, 4200.0, baseline.AvgResponseTimeMs, "response time passes through unchanged")
}

func TestUpdateBaselineRunningMean(t *testing.T) {
	baseline := models.LinguisticBaseline{
		AvgSentenceLength: 10,
		PositiveWordRatio: 0.5,
		SamplesCollected:  4,
	}
	sample := models.MessageAnalysis{AvgSentenceLength: 5, PositiveWordRatio: 0.25}

	updated := UpdateBaseline(baseline, sample)

	assert.Equal(t, 5, updated.SamplesCollected)
	assert.InDelta(t, 9.0, updated.AvgSentenceLength, 1e-9)  // (10*4 + 5) / 5
	assert.InDelta(t, 0.45, updated.PositiveWordRatio, 1e-9) // (0.5*4 + 0.25) / 5
}

func TestAnalyzeTextDegradedSentiment(t *testing.T) {
	prev := sentimentScorer
	SetSentimentScorer(nil)
	t.Cleanup(func() { SetSentimentScorer(prev) })

	// Lexicon signals still drive risk with the scorer unavailable
	analysis := AnalyzeText("I feel hopeless and worthless")
	assert.Equal(t, 0.0, analysis.SentimentScore)
	assert.NotEmpty(t, analysis.CrisisKeywords)

	deviation := ComputeDeviation(analysis, models.LinguisticBaseline{})
	assert.Equal(t, models.RiskHigh, AssessRisk(analysis, deviation))
}
