package indexer

import (
	"sync"

	"golang.org/x/xerrors"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/base/metrics"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/ledger"
)

// messageBatchLimit bounds one outbound message query per address.
const messageBatchLimit = 100

// Handler consumes one decoded outbound message.
type Handler func(c bCtx.Ctx, body *ledger.DecodedBody, createdAt int64) error

type listener struct {
	contract ledger.Contract
	handler  Handler
}

// MessageChecker ingests contract outbound messages at-most-once. The
// per-address watermark is persisted before any decoding, so a message is
// never replayed: a body that fails to decode or handle is gone for good.
type MessageChecker struct {
	gateway    ledger.Gateway
	watermarks domain.WatermarkRepo
	met        metrics.Service

	mu        sync.Mutex
	listeners map[domain.Address]*listener
}

func NewMessageChecker(gateway ledger.Gateway, watermarks domain.WatermarkRepo) *MessageChecker {
	return &MessageChecker{
		gateway:    gateway,
		watermarks: watermarks,
		met:        metrics.New("message_checker"),
		listeners:  map[domain.Address]*listener{},
	}
}

// Register attaches a listener to an address. The first registration wins;
// re-registering the same address is a no-op, so producers may register on
// every cycle without checking.
func (mc *MessageChecker) Register(address domain.Address, contract ledger.Contract, handler Handler) {
	address = address.ToLower()

	mc.mu.Lock()
	defer mc.mu.Unlock()
	if _, ok := mc.listeners[address]; ok {
		return
	}
	mc.listeners[address] = &listener{contract: contract, handler: handler}
}

// Unregister drops the listener for an address. Contracts that reached a
// terminal state (finished auctions, settled offers) emit nothing further,
// so keeping them registered only pads every ingestion pass.
func (mc *MessageChecker) Unregister(address domain.Address) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	delete(mc.listeners, address.ToLower())
}

// Registered reports whether the address already has a listener.
func (mc *MessageChecker) Registered(address domain.Address) bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	_, ok := mc.listeners[address.ToLower()]
	return ok
}

// CheckAll runs one ingestion pass over every registered address. Failures
// are logged per address and do not stop the pass.
func (mc *MessageChecker) CheckAll(c bCtx.Ctx) {
	mc.mu.Lock()
	addresses := make([]domain.Address, 0, len(mc.listeners))
	for address := range mc.listeners {
		addresses = append(addresses, address)
	}
	mc.mu.Unlock()

	for _, address := range addresses {
		if err := mc.Check(c, address); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"address": address,
			}).Error("message check failed")
			mc.met.BumpSum("check.err", 1)
		}
	}
}

// Check ingests pending messages for one address.
func (mc *MessageChecker) Check(c bCtx.Ctx, address domain.Address) error {
	address = address.ToLower()

	mc.mu.Lock()
	lis, ok := mc.listeners[address]
	mc.mu.Unlock()
	if !ok {
		return xerrors.Errorf("no listener for %s: %w", address, domain.ErrNotFound)
	}

	watermark, err := mc.watermarks.Get(c, address)
	if err != nil {
		return err
	}

	messages, err := mc.gateway.OutboundMessages(c, address, watermark, messageBatchLimit)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}

	// advance the watermark first: a message is consumed once fetched,
	// whatever happens to it afterwards
	if err := mc.watermarks.Set(c, address, messages[len(messages)-1].CreatedAt); err != nil {
		return err
	}

	for _, message := range messages {
		if message.Aborted != nil && *message.Aborted {
			continue
		}

		body, err := mc.gateway.DecodeMessageBody(c, lis.contract, message.Body)
		if err != nil {
			// bodies of other interfaces show up here, not worth logging
			continue
		}

		if err := lis.handler(c, body, message.CreatedAt); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"address": address,
				"event":   body.Name,
			}).Error("message handler failed")
			mc.met.BumpSum("handle.err", 1, "event", body.Name)
		}
	}
	return nil
}
