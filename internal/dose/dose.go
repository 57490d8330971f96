// Package dose recognizes medication doses in reminder descriptions. It is a
// best-effort keyword classifier, not a parser: extraction may fail or be
// imprecise, and callers must never let that affect the reminder lifecycle.
package dose

import (
	"regexp"
	"strings"
)

// Info is an extracted medication dose.
type Info struct {
	Name   string
	Dosage string
}

// Extractor classifies reminder text as a medication dose. Implementations
// can be swapped or disabled without touching the lifecycle controller.
type Extractor interface {
	Extract(text string) (Info, bool)
}

// medication-related trigger words; matching any of them classifies the
// reminder as a dose.
var keywords = []string{
	"medicine", "medication", "pill", "pills", "tablet", "tablets",
	"drops", "syrup", "antibiotic", "vitamin", "dose", "drug",
}

// verbs that typically precede the medication name.
var triggerVerbs = []string{"take", "give", "administer", "drink"}

var dosagePattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(mg|ml|g|iu|drops?|tablets?|pills?|spoons?)\b`)

// KeywordExtractor is the default heuristic Extractor.
type KeywordExtractor struct{}

func (KeywordExtractor) Extract(text string) (Info, bool) {
	lower := strings.ToLower(text)

	if !containsKeyword(lower) {
		return Info{}, false
	}

	info := Info{
		// Fall back to the full description when no name can be isolated.
		Name:   strings.TrimSpace(text),
		Dosage: "from reminder",
	}

	// First token following a trigger verb is taken as the medication name.
	// Generic words ("give syrup nurofen" -> nurofen) are skipped.
	for _, verb := range triggerVerbs {
		idx := indexOfWord(lower, verb)
		if idx < 0 {
			continue
		}
		if name, ok := firstNameToken(lower[idx+len(verb):]); ok {
			info.Name = capitalize(name)
			break
		}
	}

	if match := dosagePattern.FindStringSubmatch(lower); match != nil {
		info.Dosage = match[1] + " " + match[2]
	}

	return info, true
}

func firstNameToken(rest string) (string, bool) {
	for _, token := range strings.Fields(rest) {
		token = strings.Trim(token, ".,;:!?")
		if token == "" || token == "the" || token == "a" || token == "an" || token == "of" ||
			token == "your" || token == "some" || token == "her" || token == "his" {
			continue
		}
		if isKeyword(token) || isNumeric(token) {
			continue
		}
		return token, true
	}
	return "", false
}

func isNumeric(token string) bool {
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return len(token) > 0
}

func isKeyword(token string) bool {
	for _, keyword := range keywords {
		if token == keyword {
			return true
		}
	}
	return false
}

func containsKeyword(lower string) bool {
	for _, keyword := range keywords {
		if indexOfWord(lower, keyword) >= 0 {
			return true
		}
	}
	return false
}

// indexOfWord finds keyword as a whole word, so "pill" does not match
// "caterpillar".
func indexOfWord(text, keyword string) int {
	offset := 0
	for {
		idx := strings.Index(text[offset:], keyword)
		if idx < 0 {
			return -1
		}
		idx += offset
		beforeOK := idx == 0 || !isWordByte(text[idx-1])
		end := idx + len(keyword)
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return idx
		}
		offset = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
