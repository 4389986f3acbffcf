package services

import (
	"log"

	"github.com/jonreiter/govader"
)

// SentimentScorer produces a VADER-style compound polarity in [-1, 1] for a
// whole message or a single token.
type SentimentScorer interface {
	Compound(text string) float64
}

type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func (v vaderScorer) Compound(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}

// sentimentScorer is the scorer used by the analyzer. When nil (scorer failed
// to initialize), analysis degrades to neutral sentiment and the lexicon
// signals carry risk detection alone; the message path must never fail just
// because sentiment scoring is unavailable.
var sentimentScorer SentimentScorer = newVaderScorer()

func newVaderScorer() SentimentScorer {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Sentiment analyzer init failed, running with neutral sentiment: %v", r)
		}
	}()
	return vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// SetSentimentScorer swaps the scorer (tests, degraded mode).
func SetSentimentScorer(s SentimentScorer) {
	sentimentScorer = s
}

func compoundScore(text string) float64 {
	if sentimentScorer == nil {
		return 0
	}
	return sentimentScorer.Compound(text)
}
