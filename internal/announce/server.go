package announce

import (
	"net/http"

	"github.com/ctfwatch/ctf-announce/internal/logger"
)

// Handler exposes the pipeline as the trigger endpoint. Any request shape
// starts a run; the status code reports the outcome so the scheduler's own
// alerting sees failures: 200 on success, 502 when the feed side failed,
// 500 when the publish side failed.
func Handler(p *Pipeline) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Run logs its own failure cause; the response only needs
		// the classification.
		outcome, _ := p.Run(r.Context())

		switch outcome {
		case Success:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok")) //nolint:errcheck
		case FetchFailed:
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("error")) //nolint:errcheck
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("error")) //nolint:errcheck
		}

		logger.Info("trigger handled", logger.Fields{
			"outcome": outcome.String(),
			"remote":  r.RemoteAddr,
		})
	})
}
