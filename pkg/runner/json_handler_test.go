package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/portrait/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHandler_Output(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(strings.NewReader(""), buf)

	view := domain.View{Kind: domain.ViewQuestion, Question: &domain.QuestionView{Branch: 2, Question: 4, Text: "Hello"}}
	require.NoError(t, handler.Output(context.Background(), view))
	require.NoError(t, handler.SystemOutput(context.Background(), "Invalid choice"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var frame Frame
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &frame))
	assert.Equal(t, "view", frame.Type)
	assert.Equal(t, "Hello", frame.View.Question.Text)

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &frame))
	assert.Equal(t, Frame{Type: "system", Message: "Invalid choice"}, frame)
}

func TestJSONHandler_Input(t *testing.T) {
	handler := NewJSONHandler(strings.NewReader("\"2\"\nb\nlast"), &bytes.Buffer{})
	ctx := context.Background()

	val, err := handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", val)

	val, err = handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", val)

	val, err = handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "last", val)

	_, err = handler.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
}
