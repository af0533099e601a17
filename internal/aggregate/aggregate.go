// Package aggregate turns a finished session into a portrait and advice list.
package aggregate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/portrait/pkg/domain"
)

var numberMarkers = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

// Aggregate computes the result of a finished session. The session is not modified.
func Aggregate(g *domain.Graph, s *domain.Session, texts domain.Texts) domain.Result {
	fallback := texts.FallbackPortrait
	if fallback == "" {
		fallback = domain.DefaultPortrait
	}
	portrait := DominantPortrait(s.PortraitTags, fallback)

	desc, ok := Describe(g, portrait)
	if !ok {
		desc = FallbackDescription(texts.FallbackDescription, portrait)
	}

	return domain.Result{
		Portrait:    portrait,
		Description: desc,
		Advices:     FormatAdvices(s.Advices),
	}
}

// DominantPortrait returns the most frequent tag. Among tags sharing the
// highest count, the one seen first wins.
func DominantPortrait(tags []string, fallback string) string {
	if len(tags) == 0 {
		return fallback
	}

	counts := make(map[string]int, len(tags))
	order := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, seen := counts[tag]; !seen {
			order = append(order, tag)
		}
		counts[tag]++
	}

	best := order[0]
	for _, tag := range order[1:] {
		if counts[tag] > counts[best] {
			best = tag
		}
	}
	return best
}

// Describe finds the first non-empty description attached to an option whose
// tag matches portrait case-insensitively. Traversal is branch, question,
// then choice ascending.
func Describe(g *domain.Graph, portrait string) (string, bool) {
	var found string
	g.Walk(func(_ domain.Question, opt domain.Option) bool {
		if !strings.EqualFold(strings.TrimSpace(opt.PortraitTag), portrait) {
			return true
		}
		if d := strings.TrimSpace(opt.Description); d != "" {
			found = d
			return false
		}
		return true
	})
	return found, found != ""
}

// FallbackDescription synthesizes a description embedding the portrait name.
func FallbackDescription(template, portrait string) string {
	if template == "" || !strings.Contains(template, "%s") {
		return fmt.Sprintf("Your professional portrait: %s", portrait)
	}
	return fmt.Sprintf(template, portrait)
}

// FormatAdvices deduplicates advices keeping first occurrences and splits
// each into a numbered heading and a body.
func FormatAdvices(advices []string) []domain.AdviceLine {
	seen := make(map[string]bool, len(advices))
	lines := make([]domain.AdviceLine, 0, len(advices))
	for _, advice := range advices {
		if seen[advice] {
			continue
		}
		seen[advice] = true

		heading, body := SplitAdvice(advice)
		lines = append(lines, domain.AdviceLine{
			Marker:  Marker(len(lines)),
			Heading: heading,
			Body:    body,
		})
	}
	return lines
}

// SplitAdvice strips emphasis markers and splits at the earliest period or
// newline past the first character. A period stays with the heading.
func SplitAdvice(advice string) (heading, body string) {
	text := strings.ReplaceAll(advice, "*", "")

	split := -1
	if i := strings.IndexByte(text, '.'); i > 0 {
		split = i
	}
	if i := strings.IndexByte(text, '\n'); i > 0 && (split < 0 || i < split) {
		split = i
	}
	if split < 0 {
		return text, ""
	}

	heading = strings.TrimSpace(text[:split])
	if text[split] == '.' {
		heading += "."
	}
	return heading, strings.TrimSpace(text[split+1:])
}

// Marker returns the positional marker for the i-th (zero-based) advice.
func Marker(i int) string {
	if i < len(numberMarkers) {
		return numberMarkers[i]
	}
	return strconv.Itoa(i+1) + "."
}
