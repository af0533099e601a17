package runtime

import "github.com/aretw0/portrait/pkg/domain"

// Branch 1 opens with an introductory node (question 1) that is never shown;
// starting the branch lands on question 2 with both ids in the history.
const (
	introBranch       = 1
	introFirstVisible = 2
)

// Question 12 of branch 1 always finishes, whatever its options declare.
const (
	terminalBranch   = 1
	terminalQuestion = 12
)

func isTerminalOverride(branch, question int) bool {
	return branch == terminalBranch && question == terminalQuestion
}

// FirstQuestion is the first question shown when a branch starts.
func FirstQuestion(branch int) int {
	if branch == introBranch {
		return introFirstVisible
	}
	return 1
}

// IsTerminal reports whether answering the question always finishes the branch.
func IsTerminal(q domain.Question) bool {
	return q.IsFinal || isTerminalOverride(q.Branch, q.ID)
}
