package journal

import (
	"strconv"
	"strings"
)

// Emotion codes offered by the entry form. Records may carry other codes;
// those are shown numerically.
const (
	Calm = iota + 1
	Confident
	Anxious
	Fearful
	Greedy
	Frustrated
	Euphoric
)

var emotionNames = map[int]string{
	Calm:       "calm",
	Confident:  "confident",
	Anxious:    "anxious",
	Fearful:    "fearful",
	Greedy:     "greedy",
	Frustrated: "frustrated",
	Euphoric:   "euphoric",
}

// EmotionNames lists the known emotion labels in code order.
func EmotionNames() []string {
	out := make([]string, 0, len(emotionNames))
	for code := Calm; code <= Euphoric; code++ {
		out = append(out, emotionNames[code])
	}
	return out
}

// EmotionName returns the label for a code, or the code itself.
func EmotionName(code int) string {
	if name, ok := emotionNames[code]; ok {
		return name
	}
	return strconv.Itoa(code)
}

// ParseEmotion accepts a label (case insensitive) or a numeric code.
func ParseEmotion(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	for code, name := range emotionNames {
		if name == s {
			return code, true
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
