package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLevelFromDifficulty(t *testing.T) {
	tests := []struct {
		in   int
		want LevelAnalyze
		ms   int64
	}{
		{1, LevelOne, 500},
		{5, LevelFive, 2500},
		{10, LevelTen, 15000},
	}
	for _, tt := range tests {
		lvl := LevelFromDifficulty(tt.in)
		if lvl != tt.want {
			t.Fatalf("%d: got level %v", tt.in, lvl)
		}
		if ms := LevelToParams(lvl).MaxTimeMs; ms != tt.ms {
			t.Fatalf("%d: got %dms, want %dms", tt.in, ms, tt.ms)
		}
	}
	if LevelFromDifficulty(0) != LevelInvalid || LevelFromDifficulty(11) != LevelInvalid {
		t.Fatalf("out of range difficulty must be invalid")
	}
}

func TestRequestContextDeadline(t *testing.T) {
	params := SearchParams{MaxTimeMs: 100}
	ctx, cancel := RequestContext(context.Background(), params)
	defer cancel()
	dl, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("deadline missing")
	}
	if left := time.Until(dl); left < RequestGrace || left > RequestGrace+time.Second {
		t.Fatalf("deadline too far off: %v", left)
	}
}

func TestFuturePollOnce(t *testing.T) {
	release := make(chan struct{})
	f := Go(func() (string, error) {
		<-release
		return "e2e4", nil
	})
	if _, ok, _ := f.Poll(); ok {
		t.Fatalf("poll before completion must not report a result")
	}
	close(release)
	<-f.Done()
	v, ok, err := f.Poll()
	if !ok || err != nil || v != "e2e4" {
		t.Fatalf("poll: %q %v %v", v, err, ok)
	}
	if _, ok, _ := f.Poll(); ok {
		t.Fatalf("result must be consumed once")
	}
}

func TestFutureError(t *testing.T) {
	f := Resolved(0, ErrEngineFailure)
	_, ok, err := f.Poll()
	if !ok || !errors.Is(err, ErrEngineFailure) {
		t.Fatalf("poll: %v %v", err, ok)
	}
}
