package models

// MessageAnalysis is the ephemeral per-message result of linguistic analysis.
type MessageAnalysis struct {
	SentenceCount     int      `json:"sentence_count"`
	WordCount         int      `json:"word_count"`
	AvgSentenceLength float64  `json:"avg_sentence_length"`
	NegativeWordCount int      `json:"negative_word_count"`
	CrisisKeywords    []string `json:"crisis_keywords"`
	AbsolutistCount   int      `json:"absolutist_count"`
	SentimentScore    float64  `json:"sentiment_score"`     // compound, -1..1
	PositiveWordRatio float64  `json:"positive_word_ratio"` // 0..1
}

// Deviation compares a message analysis against the user's baseline.
// Deviations are signed relative changes (negative = below baseline).
type Deviation struct {
	SentenceLengthDeviation float64 `json:"sentence_length_deviation"`
	PositiveRatioDeviation  float64 `json:"positive_ratio_deviation"`
	IsDeviating             bool    `json:"is_deviating"`
}
