package indexer

import (
	"time"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/goroutine"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/ledger"
)

type OfferWatcherCfg struct {
	Gateway    ledger.Gateway
	Registrar  *Registrar
	Cursors    domain.CursorRepo
	Root       domain.Address
	Interval   time.Duration
	ErrorDelay time.Duration
	Clock      Clock
}

// OfferWatcher mirrors TokenWatcher for the offer root: derive the address
// of the next offer id, wait for its state to appear, record it pending.
type OfferWatcher struct {
	gateway    ledger.Gateway
	registrar  *Registrar
	cursors    domain.CursorRepo
	root       domain.Address
	interval   time.Duration
	errorDelay time.Duration
	clock      Clock
	stoppedCh  chan struct{}
}

func NewOfferWatcher(cfg *OfferWatcherCfg) *OfferWatcher {
	clock := cfg.Clock
	if clock == nil {
		clock = NewClock()
	}
	return &OfferWatcher{
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

func (w *OfferWatcher) Start(c bCtx.Ctx) {
	goroutine.RecoverableGo(func() { w.loop(c) })
}

func (w *OfferWatcher) Wait() {
	<-w.stoppedCh
}

func (w *OfferWatcher) loop(c bCtx.Ctx) {
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
				}).Error("offer probe failed")
				w.clock.Sleep(c, w.errorDelay)
				continue
			}
		}
		w.clock.Sleep(c, w.interval)
	}
}

// Probe tries the next offer id once.
func (w *OfferWatcher) Probe(c bCtx.Ctx) error {
	nextId, err := w.cursors.Get(c, domain.CursorOfferRoot)
	if err != nil {
		return err
	}

	address, err := w.gateway.OfferAddress(c, w.root, nextId)
	if err != nil {
		return err
	}

	if _, err := w.gateway.FetchSnapshot(c, address); err != nil {
		return err
	}

	if err := w.registrar.RegisterOffer(c, address); err != nil {
		return err
	}

	return w.cursors.Set(c, domain.CursorOfferRoot, nextId+1)
}
