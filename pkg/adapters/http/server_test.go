package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/portrait"
	portraithttp "github.com/aretw0/portrait/pkg/adapters/http"
	"github.com/aretw0/portrait/pkg/domain"
	"github.com/aretw0/portrait/pkg/dsl"
	"github.com/aretw0/portrait/pkg/observability"
	"github.com/aretw0/portrait/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph() *domain.Graph {
	b := dsl.New()
	b.Question(1, 1, "intro").Choice(1, "go", dsl.To(2))
	b.Question(1, 2, "Morning or night?").
		Choice(1, "Morning", dsl.To(3), dsl.Advice("Plan early. Deep work before noon.")).
		Choice(2, "Night", dsl.To(40))
	b.Question(1, 3, "Tea or coffee?").Final().
		Choice(1, "Tea", dsl.Portrait("Lark"), dsl.Describe("Larks rise with the sun"))
	b.Question(2, 1, "Start here?").Choice(1, "Yes", dsl.To(2))
	b.Question(2, 2, "Done?").Final().Choice(1, "Done", dsl.Portrait("Builder"))
	return b.MustGraph()
}

func newHandler(t *testing.T, opts ...portraithttp.Option) http.Handler {
	t.Helper()
	g := testGraph()
	eng := portrait.New(g, portrait.WithInterstitial(false))
	return portraithttp.NewHandler(session.NewManager(eng), g, opts...)
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) domain.View {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var view domain.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	return view
}

func TestServer_Walk(t *testing.T) {
	h := newHandler(t)

	view := decodeView(t, do(t, h, http.MethodPost, "/v1/users/42/start"))
	assert.Equal(t, domain.ViewWelcome, view.Kind)

	view = decodeView(t, do(t, h, http.MethodPost, "/v1/users/42/branches/1"))
	require.Equal(t, domain.ViewQuestion, view.Kind)
	assert.Equal(t, 2, view.Question.Question)

	view = decodeView(t, do(t, h, http.MethodPost, "/v1/users/42/answers/1"))
	assert.Equal(t, "Tea or coffee?", view.Question.Text)

	view = decodeView(t, do(t, h, http.MethodPost, "/v1/users/42/answers/1"))
	require.Equal(t, domain.ViewResult, view.Kind)
	assert.Equal(t, "Lark", view.Result.Portrait)
	assert.Equal(t, "Larks rise with the sun", view.Result.Description)
}

func TestServer_Errors(t *testing.T) {
	h := newHandler(t)
	decodeView(t, do(t, h, http.MethodPost, "/v1/users/7/branches/2"))

	tests := []struct {
		name   string
		method string
		path   string
		status int
		kind   string
		reset  bool
	}{
		{"Session Missing", http.MethodPost, "/v1/users/nobody/back", http.StatusNotFound, "session_missing", true},
		{"Invalid Choice", http.MethodPost, "/v1/users/7/answers/9", http.StatusBadRequest, "invalid_choice", false},
		{"Back Not Allowed", http.MethodPost, "/v1/users/7/back", http.StatusConflict, "back_not_allowed", false},
		{"Skip Without Interstitial", http.MethodPost, "/v1/users/7/skip", http.StatusBadRequest, "invalid_choice", false},
		{"Unknown Branch", http.MethodPost, "/v1/users/8/branches/99", http.StatusNotFound, "question_not_found", true},
		{"Malformed Branch", http.MethodPost, "/v1/users/7/branches/abc", http.StatusBadRequest, "bad_request", false},
		{"Malformed Choice", http.MethodPost, "/v1/users/7/answers/x", http.StatusBadRequest, "bad_request", false},
		{"Malformed User", http.MethodPost, "/v1/users/a%20b/start", http.StatusBadRequest, "bad_request", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path)
			assert.Equal(t, tt.status, w.Code)

			var body portraithttp.ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Kind)
			assert.Equal(t, tt.reset, body.Reset)
			assert.NotEmpty(t, body.Message)
		})
	}

	// Recoverable errors leave the session where it was.
	view := decodeView(t, do(t, h, http.MethodPost, "/v1/users/7/answers/1"))
	assert.Equal(t, "Done?", view.Question.Text)
}

func TestServer_ResetDropsSession(t *testing.T) {
	h := newHandler(t)
	decodeView(t, do(t, h, http.MethodPost, "/v1/users/3/branches/1"))

	w := do(t, h, http.MethodPost, "/v1/users/3/answers/2")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/v1/users/3/answers/1")
	var body portraithttp.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "session_missing", body.Kind)
}

func TestServer_Graph(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodGet, "/v1/graph")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Branches []struct {
			ID        int               `json:"id"`
			Questions []domain.Question `json:"questions"`
		} `json:"branches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Branches, 2)
	assert.Equal(t, 1, body.Branches[0].ID)
	assert.Len(t, body.Branches[0].Questions, 3)

	w = do(t, h, http.MethodGet, "/v1/graph/branches/2/mermaid")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))

	w = do(t, h, http.MethodGet, "/v1/graph/branches/5/mermaid")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_MermaidOverlay(t *testing.T) {
	g := testGraph()
	eng := portrait.New(g, portrait.WithInterstitial(false))
	h := portraithttp.NewHandler(session.NewManager(eng), g, portraithttp.WithStore(eng.Store()))

	decodeView(t, do(t, h, http.MethodPost, "/v1/users/5/branches/1"))
	decodeView(t, do(t, h, http.MethodPost, "/v1/users/5/answers/1"))
	decodeView(t, do(t, h, http.MethodPost, "/v1/users/6/branches/2"))

	w := do(t, h, http.MethodGet, "/v1/graph/branches/1/mermaid?user=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "class q2 visited;")
	assert.Contains(t, w.Body.String(), "class q3 current;")

	for _, path := range []string{
		"/v1/graph/branches/1/mermaid",
		"/v1/graph/branches/1/mermaid?user=6",
		"/v1/graph/branches/1/mermaid?user=nobody",
	} {
		w = do(t, h, http.MethodGet, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.NotContains(t, w.Body.String(), "classDef", path)
	}

	w = do(t, h, http.MethodGet, "/v1/graph/branches/1/mermaid?user=a%20b")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_InfoAndSpec(t *testing.T) {
	doc, err := portraithttp.GetSwagger()
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))

	h := newHandler(t)
	w := do(t, h, http.MethodGet, "/info")
	require.Equal(t, http.StatusOK, w.Code)

	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, doc.Info.Version, info["api_version"])
	assert.Equal(t, strings.TrimSpace(portrait.Version), info["version"])

	w = do(t, h, http.MethodGet, "/openapi.yaml")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/v1/users/{user}/answers/{choice}")

	w = do(t, h, http.MethodGet, "/healthz")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodOptions, "/v1/users/1/start")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	g := testGraph()
	eng := portrait.New(g, portrait.WithLifecycleHooks(metrics.Hooks()))
	h := portraithttp.NewHandler(session.NewManager(eng), g,
		portraithttp.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)

	decodeView(t, do(t, h, http.MethodPost, "/v1/users/1/branches/1"))

	w := do(t, h, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `portrait_questions_shown_total{branch="1"} 1`)
}

func TestServer_SubscribeEvents(t *testing.T) {
	srv := httptest.NewServer(newHandler(t))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/users/sse/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	readUntil := func(prefix string) string {
		for lines.Scan() {
			if strings.HasPrefix(lines.Text(), prefix) {
				return lines.Text()
			}
		}
		t.Fatalf("stream ended before %q", prefix)
		return ""
	}

	// The ping is written after the subscription is registered.
	readUntil("data: connected")

	post, err := http.Post(srv.URL+"/v1/users/sse/branches/1", "application/json", nil)
	require.NoError(t, err)
	io.Copy(io.Discard, post.Body)
	post.Body.Close()
	require.Equal(t, http.StatusOK, post.StatusCode)

	readUntil("event: view")
	data := strings.TrimPrefix(readUntil("data: "), "data: ")

	var view domain.View
	require.NoError(t, json.Unmarshal([]byte(data), &view))
	assert.Equal(t, domain.ViewQuestion, view.Kind)
	assert.Equal(t, "Morning or night?", view.Question.Text)
}

// sequenceHandler numbers every turn and stalls after numbering, so that
// overlapping turns would publish out of order.
type sequenceHandler struct {
	n atomic.Int64
}

func (h *sequenceHandler) Handle(_ context.Context, userID string, _ domain.Event) (domain.View, error) {
	n := h.n.Add(1)
	time.Sleep(5 * time.Millisecond)
	return domain.View{Kind: domain.ViewQuestion, Question: &domain.QuestionView{Branch: 1, Question: int(n)}}, nil
}

func TestServer_BroadcastFollowsTurnOrder(t *testing.T) {
	const turns = 8
	streams := portraithttp.NewStreamManager(nil)
	events, unsubscribe := streams.Subscribe("u1")
	defer unsubscribe()

	h := portraithttp.NewHandler(&sequenceHandler{}, testGraph(), portraithttp.WithStreams(streams))

	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := do(t, h, http.MethodPost, "/v1/users/u1/answers/1")
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	require.Len(t, events, turns)
	for want := 1; want <= turns; want++ {
		var view domain.View
		require.NoError(t, json.Unmarshal([]byte(<-events), &view))
		require.NotNil(t, view.Question)
		assert.Equal(t, want, view.Question.Question)
	}
}
