package indexer

import (
	"time"

	bCtx "github.com/tonart/goindexer/base/ctx"
)

// Clock abstracts time for the polling loops so tests can run them without
// real delays.
type Clock interface {
	Now() time.Time
	Sleep(c bCtx.Ctx, d time.Duration)
}

type realClock struct{}

func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

// Sleep waits for d or until the context ends, whichever comes first.
func (realClock) Sleep(c bCtx.Ctx, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-c.Done():
	case <-t.C:
	}
}
