package services

// Absolutist words linked to depression/anxiety (Al-Mosaiwi & Johnstone, 2018)
var absolutistWords = []string{
	"always", "never", "nothing", "completely", "totally", "everyone", "no one",
	"everything", "nobody", "nowhere", "forever", "constantly", "entirely",
	"absolutely", "every", "whole", "all",
}

// Crisis keywords indicating immediate risk. Matched as substrings of the
// lower-cased message so multi-word phrases hit too.
var crisisKeywords = []string{
	"suicide", "suicidal", "kill myself", "end my life", "want to die", "self-harm",
	"self harm", "cutting", "overdose", "no reason to live", "better off dead",
	"cant go on", "can't go on", "give up", "hopeless", "worthless", "pointless",
	"no way out", "end it all", "hurt myself", "not worth it",
}

// Negative emotion words for linguistic analysis
var negativeWords = []string{
	"sad", "depressed", "anxious", "worried", "scared", "afraid", "terrible",
	"horrible", "awful", "miserable", "lonely", "alone", "empty", "exhausted",
	"overwhelmed", "stressed", "angry", "frustrated", "disappointed", "ashamed",
	"guilty", "helpless", "trapped", "failing", "broken", "useless", "lost",
	"numb", "pain", "suffering", "crying", "tears", "panic", "dread",
}

var (
	absolutistSet = make(map[string]struct{}, len(absolutistWords))
	negativeSet   = make(map[string]struct{}, len(negativeWords))
)

func init() {
	for _, w := range absolutistWords {
		absolutistSet[w] = struct{}{}
	}
	for _, w := range negativeWords {
		negativeSet[w] = struct{}{}
	}
}
