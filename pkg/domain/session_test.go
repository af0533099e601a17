package domain_test

import (
	"testing"

	"github.com/aretw0/portrait/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSession_StartBranchResets(t *testing.T) {
	s := domain.NewSession("u1")
	s.Advices = []string{"old"}
	s.PortraitTags = []string{"old"}
	s.Confirmations = []string{"old"}
	s.InterstitialShown = true

	s.StartBranch(3)

	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, domain.StatusAwaitingAnswer, s.Status)
	assert.Equal(t, 3, s.Branch)
	assert.Equal(t, 1, s.CurrentQ)
	assert.Equal(t, []int{1}, s.History)
	assert.Empty(t, s.Advices)
	assert.Empty(t, s.PortraitTags)
	assert.Empty(t, s.Confirmations)
	assert.False(t, s.InterstitialShown)
}

func TestSession_BackAtRootFails(t *testing.T) {
	s := domain.NewSession("u1")
	s.StartBranch(2)
	s.MoveTo(5)
	s.MoveTo(9)

	assert.True(t, s.GoBack())
	assert.Equal(t, 5, s.CurrentQ)
	assert.True(t, s.GoBack())
	assert.Equal(t, 1, s.CurrentQ)
	assert.False(t, s.GoBack())
	assert.Equal(t, []int{1}, s.History)
}

func TestSession_RecordOrderAndBlanks(t *testing.T) {
	s := domain.NewSession("u1")
	s.Record(domain.Option{Confirmation: " ok ", PortraitTag: "X", Advice: "A.x"})
	s.Record(domain.Option{Confirmation: "  ", PortraitTag: "", Advice: "A.x"})

	assert.Equal(t, []string{"ok"}, s.Confirmations)
	assert.Equal(t, []string{"X"}, s.PortraitTags)
	assert.Equal(t, []string{"A.x", "A.x"}, s.Advices, "duplicates are kept during accumulation")

	assert.Equal(t, []string{"ok"}, s.TakeConfirmations())
	assert.Empty(t, s.Confirmations)
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := domain.NewSession("u1")
	s.StartBranch(1)
	s.Advices = []string{"a"}

	c := s.Clone()
	c.MoveTo(2)
	c.Advices[0] = "changed"

	assert.Equal(t, []int{1}, s.History)
	assert.Equal(t, "a", s.Advices[0])
}
