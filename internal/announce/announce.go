package announce

import (
	"context"
	"time"

	"github.com/ctfwatch/ctf-announce/internal/ctftime"
	"github.com/ctfwatch/ctf-announce/internal/digest"
	"github.com/ctfwatch/ctf-announce/internal/discord"
	"github.com/ctfwatch/ctf-announce/internal/logger"
)

// Outcome is the terminal state of one run.
type Outcome int

const (
	Success Outcome = iota
	FetchFailed
	PublishFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case FetchFailed:
		return "fetch_failed"
	case PublishFailed:
		return "publish_failed"
	default:
		return "unknown"
	}
}

// Fetcher is the feed-client side of the pipeline, satisfied by
// *ctftime.Client.
type Fetcher interface {
	FetchEvents(ctx context.Context, w ctftime.Window) ([]ctftime.Event, error)
}

// Pipeline runs one fetch-format-publish sequence per invocation.
type Pipeline struct {
	fetcher       Fetcher
	publisher     discord.Publisher
	lookaheadDays int

	// now is swapped in tests to pin the window.
	now func() time.Time
}

// NewPipeline wires a pipeline from its collaborators. The same lookahead
// value drives both the fetch window and the message header, so cadence and
// window length cannot drift apart silently.
func NewPipeline(fetcher Fetcher, publisher discord.Publisher, lookaheadDays int) *Pipeline {
	return &Pipeline{
		fetcher:       fetcher,
		publisher:     publisher,
		lookaheadDays: lookaheadDays,
		now:           time.Now,
	}
}

// Run executes one announcement cycle. The returned error carries the
// cause; the Outcome classifies it for the invoker. No step is retried and
// nothing persists between runs.
func (p *Pipeline) Run(ctx context.Context) (Outcome, error) {
	window := ctftime.NewWindow(p.now(), p.lookaheadDays)

	fetchStart := time.Now()
	events, err := p.fetcher.FetchEvents(ctx, window)
	if err != nil {
		logger.Error("fetching events failed", logger.Fields{
			"window_start": window.Start.Format(time.RFC3339),
			"window_end":   window.End.Format(time.RFC3339),
		}, err)
		return FetchFailed, err
	}
	logger.RecordTiming("feed.fetch", time.Since(fetchStart))
	logger.AddCounter("feed.events", int64(len(events)))

	logger.Info("retrieved events", logger.Fields{
		"count": len(events),
		"days":  p.lookaheadDays,
	})

	msg := digest.Format(events, window)

	if err := p.publisher.Publish(ctx, msg); err != nil {
		logger.Error("publishing announcement failed", logger.Fields{
			"content_length": len(msg.Content),
			"embeds":         len(msg.Embeds),
		}, err)
		return PublishFailed, err
	}
	logger.IncrCounter("publish.messages")

	logger.Info("announcement published", logger.Fields{
		"events":         len(events),
		"content_length": len(msg.Content),
	})

	return Success, nil
}
