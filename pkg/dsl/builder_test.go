package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/portrait/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := New()

	b.Question(5, 1, "Pick").
		Choice(1, "Continue", To(2), Confirm("noted")).
		Choice(2, "Stop", Portrait("X"), Advice("A.x"), Emoji("🛑")).
		Question(5, 2, "Last").
		Final().
		Media("images/image2.jpg").
		Choice(1, "Done")

	g, err := b.Graph()
	require.NoError(t, err)

	q, ok := g.Lookup(5, 1)
	require.True(t, ok)
	require.Len(t, q.Options, 2)
	assert.Equal(t, 2, *q.Options[0].NextQ)
	assert.Equal(t, "noted", q.Options[0].Confirmation)
	assert.Equal(t, domain.DefaultEmoji, q.Options[0].Emoji)
	assert.Nil(t, q.Options[1].NextQ)
	assert.Equal(t, "🛑", q.Options[1].Emoji)

	last, ok := g.Lookup(5, 2)
	require.True(t, ok)
	assert.True(t, last.IsFinal)
	assert.True(t, last.HasMedia())
}

func TestBuilder_BuildLoader(t *testing.T) {
	b := New()
	b.Question(1, 1, "a")
	b.Question(1, 1, "ignored").Choice(1, "x")

	g, err := b.Build().Load(context.Background())
	require.NoError(t, err)

	q, _ := g.Lookup(1, 1)
	assert.Equal(t, "a", q.Text, "re-adding a question returns the existing builder")
	assert.Len(t, q.Options, 1)
}
