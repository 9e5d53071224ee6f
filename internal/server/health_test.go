package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestReadinessLogsFailedDependency(t *testing.T) {
	var buf bytes.Buffer
	h := readinessHandler(map[string]Check{
		"redis": func(ctx context.Context) error { return errors.New("connection refused") },
	}, zerolog.New(&buf))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, buf.String(), `"dependency":"redis"`)
	assert.Contains(t, buf.String(), "connection refused")
}
