package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ConfigOperations.WithLabelValues("save", Result(nil)).Inc()
	m.ConfigOperations.WithLabelValues("load", Result(errors.New("boom"))).Inc()
	m.ActiveSessions.Set(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConfigOperations.WithLabelValues("save", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConfigOperations.WithLabelValues("load", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestHandler(t *testing.T) {
	m := New()
	m.EditorCommits.WithLabelValues("turbines", "ok").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cosim_editor_commits_total{kind="turbines",result="ok"} 1`)
}
