package indexer

import (
	"time"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/goroutine"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/ledger"
	"github.com/tonart/goindexer/domain/token"
)

type TokenWatcherCfg struct {
	Gateway    ledger.Gateway
	Registrar  *Registrar
	Cursors    domain.CursorRepo
	Root       domain.Address
	Interval   time.Duration
	ErrorDelay time.Duration
	Clock      Clock
}

// TokenWatcher discovers newly deployed tokens by probing deterministic
// addresses. The root assigns sequential ids, so the watcher derives the
// address of the next id and waits until an account state appears there.
// The cursor only advances after the token is fully recorded; a crash
// replays the registration, which the managers absorb.
type TokenWatcher struct {
	gateway    ledger.Gateway
	registrar  *Registrar
	cursors    domain.CursorRepo
	root       domain.Address
	interval   time.Duration
	errorDelay time.Duration
	clock      Clock
	stoppedCh  chan struct{}
}

func NewTokenWatcher(cfg *TokenWatcherCfg) *TokenWatcher {
	clock := cfg.Clock
	if clock == nil {
		clock = NewClock()
	}
	return &TokenWatcher{
		gateway:    cfg.Gateway,
		registrar:  cfg.Registrar,
		cursors:    cfg.Cursors,
		root:       cfg.Root.ToLower(),
		interval:   cfg.Interval,
		errorDelay: cfg.ErrorDelay,
		clock:      clock,
		stoppedCh:  make(chan struct{}),
	}
}

func (w *TokenWatcher) Start(c bCtx.Ctx) {
	goroutine.RecoverableGo(func() { w.loop(c) })
}

func (w *TokenWatcher) Wait() {
	<-w.stoppedCh
}

func (w *TokenWatcher) loop(c bCtx.Ctx) {
	defer close(w.stoppedCh)
	for {
		select {
		case <-c.Done():
			return
		default:
		}

		if err := w.Probe(c); err != nil {
			if !ledger.IsBenignExecError(err) {
				c.WithFields(log.Fields{
					"err":  err,
					"root": w.root,
				}).Error("token probe failed")
				w.clock.Sleep(c, w.errorDelay)
				continue
			}
		}
		w.clock.Sleep(c, w.interval)
	}
}

// Probe tries the next id once. Returns a benign ledger error while the
// next token has not been deployed yet.
func (w *TokenWatcher) Probe(c bCtx.Ctx) error {
	nextId, err := w.cursors.Get(c, domain.CursorTokenRoot)
	if err != nil {
		return err
	}

	address, err := w.gateway.TokenAddress(c, w.root, nextId)
	if err != nil {
		return err
	}

	// no state at the derived address means the token does not exist yet;
	// keep probing the same id
	if _, err := w.gateway.FetchSnapshot(c, address); err != nil {
		return err
	}

	if err := w.registrar.RegisterToken(c, address, token.TypeArt1, domain.EmptyAddress); err != nil {
		return err
	}

	return w.cursors.Set(c, domain.CursorTokenRoot, nextId+1)
}
