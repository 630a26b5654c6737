package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modelReply(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{
				"role":  "model",
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-key", "test-model", time.Second)
}

func TestSessionTextReply(t *testing.T) {
	var got generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(modelReply("Faith is trust in God.")))
	})

	sess := c.NewSession()
	defer sess.Close()

	reply, err := sess.Send(context.Background(), "What is faith?")
	require.NoError(t, err)

	text, ok := reply.(TextReply)
	require.True(t, ok)
	assert.Equal(t, "Faith is trust in God.", text.Text)
	require.NotNil(t, got.SystemInstruction)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "Bible study assistant")
}

func TestSessionKeepsHistory(t *testing.T) {
	var turns int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		turns = len(req.Contents)
		w.Write([]byte(modelReply("answer")))
	})

	sess := c.NewSession()
	defer sess.Close()

	_, err := sess.Send(context.Background(), "first question")
	require.NoError(t, err)
	assert.Equal(t, 1, turns)

	_, err = sess.Send(context.Background(), "second question")
	require.NoError(t, err)
	// prior user+model turns plus the new prompt
	assert.Equal(t, 3, turns)
}

func TestSessionPlanReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		plan := `{"title":"Finding Peace","duration":"3-Day Plan","description":"d","content":[
			{"day":1,"title":"t1","scripture":"John 14:27","body":"b","prayer":"p"},
			{"day":2,"title":"t2","scripture":"Phil 4:6","body":"b","prayer":"p"},
			{"day":3,"title":"t3","scripture":"Ps 23","body":"b","prayer":"p"}]}`
		w.Write([]byte(modelReply(plan)))
	})

	sess := c.NewSession()
	defer sess.Close()

	reply, err := sess.Send(context.Background(), "Please create a plan about peace")
	require.NoError(t, err)

	pr, ok := reply.(PlanReply)
	require.True(t, ok)
	assert.Equal(t, "Finding Peace", pr.Plan.Title)
	assert.Len(t, pr.Plan.Content, 3)
	assert.NotEmpty(t, pr.Plan.ID)
}

func TestSessionClosed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(modelReply("x")))
	})

	sess := c.NewSession()
	sess.Close()

	_, err := sess.Send(context.Background(), "hello?")
	assert.Error(t, err)
}

func TestGeneratePrayerTrimsWhitespace(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(modelReply("\n  Lord, guide us today.  \n")))
	})

	got, err := c.GeneratePrayer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Lord, guide us today.", got)
}

func TestGeneratePlanFillsDuration(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		plan := `{"title":"Grace","description":"d","content":[
			{"day":1,"title":"t","scripture":"Eph 2:8","body":"b","prayer":"p"},
			{"day":2,"title":"t","scripture":"Rom 5:8","body":"b","prayer":"p"}]}`
		w.Write([]byte(modelReply(plan)))
	})

	got, err := c.GeneratePlan(context.Background(), "grace for beginners")
	require.NoError(t, err)
	assert.Equal(t, "2-Day Plan", got.Duration)
}

func TestUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := c.GeneratePrayer(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLooksLikePlanRequest(t *testing.T) {
	cases := []struct {
		prompt string
		want   bool
	}{
		{"Please create a plan about peace", true},
		{"make me a 7 day reading plan", true},
		{"I want a devotional plan on grace", true},
		{"What does Paul say about planning ahead?", false},
		{"What is faith?", false},
		{"Explain God's plan of salvation", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, looksLikePlanRequest(tc.prompt), tc.prompt)
	}
}
