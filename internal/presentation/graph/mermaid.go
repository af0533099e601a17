package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/portrait/internal/runtime"
	"github.com/aretw0/portrait/pkg/domain"
)

// GraphOverlay contains session data to visualize on the graph.
type GraphOverlay struct {
	VisitedQuestions []int
	CurrentQuestion  int
}

// OverlayFromSession highlights the history and position of a session.
func OverlayFromSession(s *domain.Session) *GraphOverlay {
	if s == nil {
		return nil
	}
	return &GraphOverlay{
		VisitedQuestions: s.History,
		CurrentQuestion:  s.CurrentQ,
	}
}

// GenerateMermaid produces a Mermaid flowchart for one branch.
// It applies semantic styling:
// - First shown question: ((Circle))
// - Terminal question: [[Subroutine]]
// - Default: [/Parallelogram/]
// Options without a next question point at a shared result node.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(g *domain.Graph, branch int, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	first := runtime.FirstQuestion(branch)
	hasResult := false

	for _, q := range g.Questions(branch) {
		id := nodeID(q.ID)

		opener, closer := "[/", "/]"
		switch {
		case q.ID == first:
			opener, closer = "((", "))"
		case runtime.IsTerminal(q):
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%d. %s\"%s\n", id, opener, q.ID, escape(truncate(q.Text, 40)), closer)

		for _, opt := range q.Options {
			label := escape(fmt.Sprintf("%d. %s", opt.Choice, truncate(opt.Label, 30)))
			if opt.NextQ == nil || runtime.IsTerminal(q) {
				hasResult = true
				fmt.Fprintf(&sb, "    %s -. \"%s\" .-> result\n", id, label)
				continue
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", id, label, nodeID(*opt.NextQ))
		}
	}

	if hasResult {
		sb.WriteString("    result((\"🎯 result\"))\n")
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, qid := range overlay.VisitedQuestions {
			if !seen[qid] && qid != overlay.CurrentQuestion {
				seen[qid] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(qid))
			}
		}
		if overlay.CurrentQuestion != 0 {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(overlay.CurrentQuestion))
		}
	}

	return sb.String()
}

func nodeID(q int) string {
	return fmt.Sprintf("q%d", q)
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.ReplaceAll(s, "\n", " ")
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "…"
}
