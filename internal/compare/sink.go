package compare

import "context"

// Sink is the capability object a comparison reports through: progress
// percentages out, cancellation polls in. It is passed in explicitly; nothing
// in this package reaches for ambient state.
//
// Compare serializes all ReportProgress and Cancelled calls, including when
// the sweep runs on multiple workers, so implementations do not need their
// own locking.
type Sink interface {
	ReportProgress(percent int)
	Cancelled() bool
}

// NopSink discards progress and never cancels.
type NopSink struct{}

func (NopSink) ReportProgress(int) {}
func (NopSink) Cancelled() bool    { return false }

// ContextSink derives cancellation from ctx and forwards progress to fn.
// A nil fn discards progress.
func ContextSink(ctx context.Context, fn func(percent int)) Sink {
	return &contextSink{ctx: ctx, fn: fn}
}

type contextSink struct {
	ctx context.Context
	fn  func(percent int)
}

func (s *contextSink) ReportProgress(percent int) {
	if s.fn != nil {
		s.fn(percent)
	}
}

func (s *contextSink) Cancelled() bool {
	select {
	case <-s.ctx.Done():
		return true
	default:
		return false
	}
}

// MultiSink fans progress out to every member and reports cancellation as
// soon as any member is cancelled.
type MultiSink []Sink

func (m MultiSink) ReportProgress(percent int) {
	for _, s := range m {
		s.ReportProgress(percent)
	}
}

func (m MultiSink) Cancelled() bool {
	for _, s := range m {
		if s.Cancelled() {
			return true
		}
	}
	return false
}
