// Package sentiment scores the emotional pressure tactics used in scam
// messages: urgency, fear, greed and appeals to authority.
package sentiment

import "strings"

var (
	urgencyWords = []string{
		"urgent", "immediately", "now", "hurry", "quick", "fast", "asap",
		"deadline", "expire", "last chance",
	}
	fearWords = []string{
		"blocked", "suspended", "arrested", "police", "legal", "court",
		"fine", "penalty", "seized", "jail",
	}
	greedWords = []string{
		"winner", "prize", "lottery", "cashback", "refund", "bonus",
		"free", "gift", "reward", "crore", "lakh",
	}
	authorityWords = []string{
		"rbi", "bank", "government", "official", "department", "police",
		"court", "minister", "manager",
	}
)

// Emotion names, also used as keys in EmotionScores. The order is the
// tie-break order for the dominant emotion.
var emotionOrder = []string{"urgency", "fear", "greed", "authority"}

// Profile summarizes the emotional tone of a body of text.
type Profile struct {
	DominantEmotion   string             `json:"dominantEmotion"`
	EmotionScores     map[string]float64 `json:"emotionScores"`
	ManipulationLevel float64            `json:"manipulationLevel"`
}

// Analyze scores text against each emotion word list. An emotion score
// is the fraction of its list found in the text; the manipulation level
// is the mean of the four scores.
func Analyze(text string) Profile {
	lower := strings.ToLower(text)

	scores := map[string]float64{
		"urgency":   listScore(lower, urgencyWords),
		"fear":      listScore(lower, fearWords),
		"greed":     listScore(lower, greedWords),
		"authority": listScore(lower, authorityWords),
	}

	dominant := emotionOrder[0]
	total := 0.0
	for _, emotion := range emotionOrder {
		total += scores[emotion]
		if scores[emotion] > scores[dominant] {
			dominant = emotion
		}
	}

	return Profile{
		DominantEmotion:   dominant,
		EmotionScores:     scores,
		ManipulationLevel: total / float64(len(emotionOrder)),
	}
}

func listScore(lower string, words []string) float64 {
	hits := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(words))
}
