package indexer

import (
	"time"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/goroutine"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/base/metrics"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/action"
	"github.com/tonart/goindexer/domain/auction"
	"github.com/tonart/goindexer/domain/ledger"
	"github.com/tonart/goindexer/domain/offer"
	"github.com/tonart/goindexer/domain/token"
)

type ReconcilerCfg struct {
	Gateway    ledger.Gateway
	Checker    *MessageChecker
	TokenRepo  token.Repo
	TokenUC    token.Usecase
	ActionUC   action.Usecase
	AuctionUC  auction.Usecase
	OfferUC    offer.Usecase
	Interval   time.Duration
	ChunkDelay time.Duration
	ErrorDelay time.Duration
	Clock      Clock
}

// Reconciler drives the cache toward the ledger. Each cycle it re-reads the
// state of every cached token in batched snapshot fetches, synthesizes
// actions for observed transitions and applies the matching patches.
// Detected state is authoritative; the cache never leads it.
type Reconciler struct {
	gateway    ledger.Gateway
	checker    *MessageChecker
	tokenRepo  token.Repo
	tokenUC    token.Usecase
	actionUC   action.Usecase
	auctionUC  auction.Usecase
	offerUC    offer.Usecase
	interval   time.Duration
	chunkDelay time.Duration
	errorDelay time.Duration
	clock      Clock
	met        metrics.Service
	stoppedCh  chan struct{}
}

func NewReconciler(cfg *ReconcilerCfg) *Reconciler {
	clock := cfg.Clock
	if clock == nil {
		clock = NewClock()
	}
	return &Reconciler{
		gateway:    cfg.Gateway,
		checker:    cfg.Checker,
		tokenRepo:  cfg.TokenRepo,
		tokenUC:    cfg.TokenUC,
		actionUC:   cfg.ActionUC,
		auctionUC:  cfg.AuctionUC,
		offerUC:    cfg.OfferUC,
		interval:   cfg.Interval,
		chunkDelay: cfg.ChunkDelay,
		errorDelay: cfg.ErrorDelay,
		clock:      clock,
		met:        metrics.New("reconciler"),
		stoppedCh:  make(chan struct{}),
	}
}

func (r *Reconciler) Start(c bCtx.Ctx) {
	goroutine.RecoverableGo(func() { r.loop(c) })
}

func (r *Reconciler) Wait() {
	<-r.stoppedCh
}

func (r *Reconciler) loop(c bCtx.Ctx) {
	defer close(r.stoppedCh)
	for {
		select {
		case <-c.Done():
			return
		default:
		}

		if err := r.Cycle(c); err != nil {
			c.WithField("err", err).Error("reconcile cycle failed")
			r.clock.Sleep(c, r.errorDelay)
			continue
		}
		r.clock.Sleep(c, r.interval)
	}
}

// Cycle runs one full reconciliation pass.
func (r *Reconciler) Cycle(c bCtx.Ctx) error {
	defer r.met.BumpTime("cycle.time").End()

	tokens, err := r.tokenRepo.FindAll(c)
	if err != nil {
		return err
	}
	r.met.BumpAvg("tokens.count", float64(len(tokens)))

	for start := 0; start < len(tokens); start += ledger.SnapshotBatchLimit {
		end := start + ledger.SnapshotBatchLimit
		if end > len(tokens) {
			end = len(tokens)
		}
		r.reconcileChunk(c, tokens[start:end])

		select {
		case <-c.Done():
			return nil
		default:
		}
		r.clock.Sleep(c, r.chunkDelay)
	}

	if err := r.registerOfferListeners(c); err != nil {
		c.WithField("err", err).Error("registering offer listeners failed")
	}

	r.checker.CheckAll(c)
	return nil
}

func (r *Reconciler) reconcileChunk(c bCtx.Ctx, tokens []*token.Token) {
	addresses := make([]domain.Address, 0, len(tokens))
	for _, _token := range tokens {
		addresses = append(addresses, _token.Address)
	}

	snapshots, err := r.gateway.FetchSnapshots(c, addresses)
	if err != nil {
		c.WithField("err", err).Error("batched snapshot fetch failed")
		return
	}

	for _, _token := range tokens {
		snapshot, ok := snapshots[_token.Address.ToLower()]
		if !ok {
			// account state unavailable this cycle, try again next one
			continue
		}
		if err := r.ReconcileToken(c, _token, snapshot); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"tokenId": _token.TokenId,
			}).Error("token reconcile failed")
			r.met.BumpSum("token.err", 1)
		}
	}
}

// ReconcileToken diffs one token's ledger state against its cached state.
func (r *Reconciler) ReconcileToken(c bCtx.Ctx, _token *token.Token, snapshot *ledger.Snapshot) error {
	contract := tokenContract(_token.Type)

	info, err := r.gateway.GetTokenInfo(c, snapshot, contract)
	if err != nil {
		return err
	}
	r.clock.Sleep(c, probeDelay)
	art, err := r.gateway.GetArtInfo(c, snapshot, contract)
	if err != nil {
		return err
	}

	if art.Hash != _token.Hash {
		if err := r.applyHashChange(c, _token, info, art); err != nil {
			return err
		}
	}

	if !info.Owner.Equals(_token.Owner) {
		if err := r.applyOwnerChange(c, _token, info, art); err != nil {
			return err
		}
	}

	return r.reconcileManager(c, _token, info)
}

func (r *Reconciler) applyHashChange(c bCtx.Ctx, _token *token.Token, info *ledger.TokenInfo, art *ledger.ArtInfo) error {
	_action := &action.Action{
		Type:          action.TypeSetHash,
		Time:          r.clock.Now().Unix(),
		TokenId:       _token.TokenId,
		Address:       _token.Address,
		UserPublicKey: info.PublicKey,
		Owner:         info.Owner,
		Hash:          art.Hash,
		PreviousHash:  _token.Hash,
		Creator:       art.Creator,
		Collection:    _token.Collection,
	}
	if _, err := r.actionUC.Add(c, _action); err != nil {
		return err
	}
	return r.tokenUC.SetHash(c, _token.TokenId, art.Hash)
}

func (r *Reconciler) applyOwnerChange(c bCtx.Ctx, _token *token.Token, info *ledger.TokenInfo, art *ledger.ArtInfo) error {
	_action := &action.Action{
		Type:          action.TypeChangeOwner,
		Time:          r.clock.Now().Unix(),
		TokenId:       _token.TokenId,
		Address:       _token.Address,
		UserPublicKey: info.PublicKey,
		Owner:         info.Owner,
		PreviousOwner: _token.Owner,
		Hash:          art.Hash,
		Creator:       art.Creator,
		Collection:    _token.Collection,
	}
	if _, err := r.actionUC.Add(c, _action); err != nil {
		return err
	}
	return r.tokenUC.SetOwner(c, _token.TokenId, info.Owner)
}

// reconcileManager handles the auction live-cycle hanging off the token's
// manager slot. A manager address differing from the cached auction means
// the token was handed to a new auction contract.
func (r *Reconciler) reconcileManager(c bCtx.Ctx, _token *token.Token, info *ledger.TokenInfo) error {
	var cached *auction.AuctionWithDetails
	if _token.AuctionId != nil {
		var err error
		cached, err = r.auctionUC.GetByAuctionId(c, *_token.AuctionId)
		if err != nil && err != domain.ErrNotFound {
			return err
		}
	}

	cachedAddress := domain.EmptyAddress
	if cached != nil {
		cachedAddress = cached.Address
	}

	if !info.Manager.IsEmpty() && !info.Manager.Equals(_token.Address) && !info.Manager.Equals(cachedAddress) {
		if err := r.attachAuction(c, _token, info.Manager); err != nil {
			if ledger.IsBenignExecError(err) {
				// the manager is not a committed auction contract (yet)
				return nil
			}
			return err
		}
	}

	if cached != nil && !cached.IsFinished() && cached.EndTime <= r.clock.Now().Unix() {
		// past its end but unsettled, nudge the contract; the FinishEvent
		// message will record the outcome
		if err := r.gateway.FinishAuction(c, cached.Address); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"auctionId": cached.AuctionId,
			}).Warn("finish call failed, retrying next cycle")
			r.met.BumpSum("finish.err", 1)
		}
	}

	if cached != nil {
		if cached.IsFinished() {
			r.checker.Unregister(cached.Address)
		} else {
			r.listenAuction(cached.Address, cached.AuctionId)
		}
	}
	return nil
}

// listenAuction attaches the bid/finish listener; the listener drops itself
// once the auction settles.
func (r *Reconciler) listenAuction(address domain.Address, auctionId string) {
	r.checker.Register(address, ledger.ContractDirectAuction,
		AuctionEventHandler(r.auctionUC, auctionId, func() {
			r.checker.Unregister(address)
		}))
}

func (r *Reconciler) attachAuction(c bCtx.Ctx, _token *token.Token, manager domain.Address) error {
	info, err := r.gateway.GetAuctionInfo(c, manager)
	if err != nil {
		return err
	}

	_auction := &auction.Auction{
		AuctionId: info.Id,
		Address:   manager.ToLower(),
		Creator:   info.Creator,
		Token:     info.Token,
		StartBid:  info.StartBid,
		StepBid:   info.StepBid,
		FeeBid:    info.FeeBid,
		StartTime: info.StartTime,
		EndTime:   info.EndTime,
	}
	if err := r.tokenUC.SetAuction(c, _token.TokenId, _auction); err != nil {
		return err
	}

	r.listenAuction(_auction.Address, _auction.AuctionId)

	c.WithFields(log.Fields{
		"tokenId":   _token.TokenId,
		"auctionId": _auction.AuctionId,
	}).Info("auction attached")
	return nil
}

func (r *Reconciler) registerOfferListeners(c bCtx.Ctx) error {
	pending, err := r.offerUC.GetPending(c)
	if err != nil {
		return err
	}
	for _, _offer := range pending {
		address := _offer.Address
		r.checker.Register(address, ledger.ContractOffer,
			OfferEventHandler(r.offerUC, _offer.OfferId, func() {
				r.checker.Unregister(address)
			}))
	}
	return nil
}
