package compare

import (
	"context"
	"testing"
)

func TestNopSink(t *testing.T) {
	var s NopSink
	s.ReportProgress(50)
	if s.Cancelled() {
		t.Error("NopSink should never be cancelled")
	}
}

func TestContextSink(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var got []int
	s := ContextSink(ctx, func(p int) { got = append(got, p) })

	s.ReportProgress(10)
	s.ReportProgress(20)
	if len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Errorf("progress not forwarded: %v", got)
	}

	if s.Cancelled() {
		t.Error("should not be cancelled before ctx is done")
	}
	cancel()
	if !s.Cancelled() {
		t.Error("should be cancelled after ctx is done")
	}
}

func TestContextSinkNilFunc(t *testing.T) {
	s := ContextSink(context.Background(), nil)
	s.ReportProgress(42) // must not panic
	if s.Cancelled() {
		t.Error("background context should not cancel")
	}
}

func TestMultiSink(t *testing.T) {
	a := &recordSink{}
	b := &recordSink{}
	m := MultiSink{a, b}

	m.ReportProgress(7)
	if len(a.percents) != 1 || len(b.percents) != 1 {
		t.Errorf("fan-out failed: %v / %v", a.percents, b.percents)
	}

	if m.Cancelled() {
		t.Error("no member is cancelled")
	}
	b.cancelled = true
	if !m.Cancelled() {
		t.Error("any cancelled member cancels the MultiSink")
	}
}
