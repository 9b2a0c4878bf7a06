package screening

import (
	"regexp"
	"strings"
)

// ProfanitySeverity is the severity a profanity hit contributes on its own.
const ProfanitySeverity = 3

const ProfanityReason = "Contains profanity"

var profaneWords = []string{
	"arsehole", "ass", "asshole", "bastard", "bitch", "bitches", "bollocks",
	"bullshit", "cock", "cunt", "dick", "dickhead", "fuck", "fucked",
	"fucker", "fucking", "motherfucker", "piss", "prick", "shit", "shitty",
	"slut", "twat", "wanker", "whore",
}

// ProfanityClassifier flags text containing any word of a fixed list.
// Matching is per word, so "class" or "scrap" never trip it.
type ProfanityClassifier struct {
	pattern *regexp.Regexp
}

func NewProfanityClassifier() *ProfanityClassifier {
	return NewProfanityClassifierWithWords(profaneWords)
}

func NewProfanityClassifierWithWords(words []string) *ProfanityClassifier {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
	}
	if len(quoted) == 0 {
		return &ProfanityClassifier{}
	}
	return &ProfanityClassifier{pattern: wholeWordPattern(strings.Join(quoted, "|"))}
}

func (c *ProfanityClassifier) IsProfane(text string) bool {
	if c == nil || c.pattern == nil {
		return false
	}
	return c.pattern.MatchString(text)
}

// wholeWordPattern matches alternation only where it is bounded by the text
// edges or by a rune that is not a letter, digit or underscore. \b is ASCII
// only in RE2, which would split words like "café".
func wholeWordPattern(alternation string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(?:` + alternation + `)(?:$|[^\p{L}\p{N}_])`)
}
