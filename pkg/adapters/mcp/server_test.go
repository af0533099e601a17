package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/portrait"
	"github.com/aretw0/portrait/pkg/domain"
	"github.com/aretw0/portrait/pkg/dsl"
	"github.com/aretw0/portrait/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	b := dsl.New()
	b.Question(2, 1, "Start here?").Choice(1, "Yes", dsl.To(2))
	b.Question(2, 2, "Done?").Final().Choice(1, "Done", dsl.Portrait("Builder"))
	g := b.MustGraph()

	eng := portrait.New(g, portrait.WithEntryBranches(2), portrait.WithInterstitial(true))
	return NewServer(session.NewManager(eng), g)
}

func TestServer_TurnTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	call := func(event func(TurnArgs) domain.Event, args TurnArgs) TurnResponse {
		t.Helper()
		resp, err := s.turn(event)(ctx, mcp.CallToolRequest{}, args)
		require.NoError(t, err)
		return resp
	}

	resp := call(func(TurnArgs) domain.Event { return domain.Start() }, TurnArgs{UserID: "u1"})
	require.NotNil(t, resp.View)
	assert.Equal(t, domain.ViewWelcome, resp.View.Kind)
	assert.Equal(t, 2, resp.View.Welcome.Branches[0].Choice)

	resp = call(func(a TurnArgs) domain.Event { return domain.StartBranch(a.Branch) }, TurnArgs{UserID: "u1", Branch: 2})
	require.NotNil(t, resp.View)
	assert.Equal(t, "Start here?", resp.View.Question.Text)

	answer := func(a TurnArgs) domain.Event { return domain.Answer(a.Choice) }

	resp = call(answer, TurnArgs{UserID: "u1", Choice: 5})
	assert.Nil(t, resp.View)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrorInfo{Kind: "invalid_choice", Message: "Invalid choice", Reset: false}, *resp.Error)

	call(answer, TurnArgs{UserID: "u1", Choice: 1})
	resp = call(answer, TurnArgs{UserID: "u1", Choice: 1})
	require.NotNil(t, resp.View)
	assert.Equal(t, domain.ViewInterstitial, resp.View.Kind)

	resp = call(func(TurnArgs) domain.Event { return domain.SkipInterstitial() }, TurnArgs{UserID: "u1"})
	require.NotNil(t, resp.View)
	assert.Equal(t, "Builder", resp.View.Result.Portrait)

	resp = call(func(TurnArgs) domain.Event { return domain.Back() }, TurnArgs{UserID: "u1"})
	require.NotNil(t, resp.Error)
	assert.True(t, resp.Error.Reset, "the session is gone once the result was delivered")
}

func TestServer_RejectsMissingUser(t *testing.T) {
	s := newTestServer(t)
	_, err := s.turn(func(TurnArgs) domain.Event { return domain.Start() })(context.Background(), mcp.CallToolRequest{}, TurnArgs{UserID: "  "})
	assert.Error(t, err)
}

func TestServer_GraphResource(t *testing.T) {
	s := newTestServer(t)

	contents, err := s.readGraph(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, GraphURI, text.URI)

	var doc graphDocument
	require.NoError(t, json.Unmarshal([]byte(text.Text), &doc))
	require.Len(t, doc.Branches, 1)
	assert.Equal(t, 2, doc.Branches[0].ID)
	assert.Len(t, doc.Branches[0].Questions, 2)
}

func TestServer_ListsTools(t *testing.T) {
	s := newTestServer(t)

	msg := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	for _, name := range []string{"start", "start_branch", "answer", "back", "restart", "skip_interstitial"} {
		assert.Contains(t, string(raw), `"name":"`+name+`"`)
	}
}
