package server

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

func readinessHandler(checks map[string]Check, fallback zerolog.Logger) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger := logging.FromContextOr(r.Context(), fallback)
				logger.Error().Err(err).Str("dependency", name).Msg("dependency ping failed")
				results[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		httperrors.RespondJSON(w, status, map[string]interface{}{
			"ready":        status == http.StatusOK,
			"dependencies": results,
		})
	}
}
