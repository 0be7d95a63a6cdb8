package media

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Playback milestones reported to the analytics sink, in percent of the
// video duration. Progress at or beyond endedThreshold counts as a complete
// view.
var milestones = [...]int{25, 50, 75}

const endedThreshold = 95.0

// Event is a single playback analytics report.
type Event struct {
	Name      string
	Source    string
	Milestone int
}

// Sink receives playback analytics events.
type Sink interface {
	TrackEvent(ev Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev Event)

func (f SinkFunc) TrackEvent(ev Event) { f(ev) }

// Tracker reports playback milestones for a single player. Milestones are
// monotonic and fire at most once per source: replays of the same position
// and seeks backwards produce nothing, while a seek forward reports every
// skipped milestone in order. Switching sources resets the whole state
// machine. Safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	sink    Sink
	log     *zap.Logger
	src     string
	playing bool
	passed  [len(milestones)]bool
	ended   bool
	cancel  context.CancelFunc
}

// NewTracker wires a tracker reporting to the given sink.
func NewTracker(sink Sink, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{sink: sink, log: log}
}

// SetSource switches the tracker to a new video source, resetting all
// milestone state. Setting the same source again is a no-op.
func (t *Tracker) SetSource(src string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if src == t.src {
		return
	}
	t.src = src
	t.playing = false
	t.passed = [len(milestones)]bool{}
	t.ended = false
}

// Play transitions an idle player into playback and reports the start.
func (t *Tracker) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.play()
}

func (t *Tracker) play() {
	if t.playing {
		return
	}
	t.playing = true
	t.emit(Event{Name: "video-play", Source: t.src})
}

// Progress reports the current playback position in percent. Every newly
// crossed milestone fires exactly once, in ascending order, regardless of
// how far a single report jumps. Progress never synthesizes a play event -
// that is reported only by the player's own Play callback.
func (t *Tracker) Progress(pct float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ended {
		return
	}
	for i, m := range milestones {
		if !t.passed[i] && pct >= float64(m) {
			t.passed[i] = true
			t.emit(Event{Name: "video-progress", Source: t.src, Milestone: m})
		}
	}
	if pct >= endedThreshold {
		t.finish()
	}
}

// Ended reports playback completion. Idempotent until the source changes.
func (t *Tracker) Ended() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finish()
}

func (t *Tracker) finish() {
	if t.ended {
		return
	}
	t.ended = true
	t.playing = false
	t.emit(Event{Name: "video-ended", Source: t.src})
}

func (t *Tracker) emit(ev Event) {
	t.log.Debug("Playback event", zap.String("event", ev.Name), zap.String("source", ev.Source), zap.Int("milestone", ev.Milestone))
	if t.sink != nil {
		t.sink.TrackEvent(ev)
	}
}

// Poll samples playback position at the given interval until the context is
// canceled, the tracker is closed, or playback completes. Only one poller
// runs at a time - starting a new one stops the previous.
func (t *Tracker) Poll(ctx context.Context, interval time.Duration, position func() (pct float64, ended bool)) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.cancel = cancel
	t.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pct, ended := position()
				if ended {
					t.Ended()
					return
				}
				t.Progress(pct)
			}
		}
	}()
}

// Close stops the poller if one is running. The tracker remains usable for
// direct Progress and Ended reports.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
