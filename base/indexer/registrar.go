package indexer

import (
	"time"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/action"
	"github.com/tonart/goindexer/domain/collection"
	"github.com/tonart/goindexer/domain/ledger"
	"github.com/tonart/goindexer/domain/offer"
	"github.com/tonart/goindexer/domain/token"
)

// probeDelay spaces the two read-only calls run against one account so a
// public node does not throttle us.
const probeDelay = 500 * time.Millisecond

type RegistrarCfg struct {
	Gateway      ledger.Gateway
	TokenRepo    token.Repo
	TokenUC      token.Usecase
	ActionUC     action.Usecase
	OfferUC      offer.Usecase
	CollectionUC collection.Usecase
	Clock        Clock
}

// Registrar turns discovered contract addresses into cached tokens, offers
// and their first actions. All writes go through the idempotent managers,
// so re-registering an already known entity is harmless.
type Registrar struct {
	gateway      ledger.Gateway
	tokenRepo    token.Repo
	tokenUC      token.Usecase
	actionUC     action.Usecase
	offerUC      offer.Usecase
	collectionUC collection.Usecase
	clock        Clock
}

func NewRegistrar(cfg *RegistrarCfg) *Registrar {
	clock := cfg.Clock
	if clock == nil {
		clock = NewClock()
	}
	return &Registrar{
		gateway:      cfg.Gateway,
		tokenRepo:    cfg.TokenRepo,
		tokenUC:      cfg.TokenUC,
		actionUC:     cfg.ActionUC,
		offerUC:      cfg.OfferUC,
		collectionUC: cfg.CollectionUC,
		clock:        clock,
	}
}

func tokenContract(typ token.Type) ledger.Contract {
	if typ == token.TypeArt2 {
		return ledger.ContractArt2Token
	}
	return ledger.ContractArtToken
}

// RegisterToken reads the token's full state and records the token and its
// birth action. collection is empty for standalone tokens and carries the
// series address for minted ones.
func (r *Registrar) RegisterToken(c bCtx.Ctx, address domain.Address, typ token.Type, collection domain.Address) error {
	snapshot, err := r.gateway.FetchSnapshot(c, address)
	if err != nil {
		return err
	}

	info, err := r.gateway.GetTokenInfo(c, snapshot, tokenContract(typ))
	if err != nil {
		return err
	}
	r.clock.Sleep(c, probeDelay)
	art, err := r.gateway.GetArtInfo(c, snapshot, tokenContract(typ))
	if err != nil {
		return err
	}

	_token := &token.Token{
		TokenId:       info.Id,
		Type:          typ,
		Address:       address.ToLower(),
		UserPublicKey: info.PublicKey,
		Owner:         info.Owner,
		Hash:          art.Hash,
		Creator:       art.Creator,
		Maximum:       info.Maximum,
		Collection:    collection.ToLower(),
	}
	if _, err := r.tokenUC.Add(c, _token); err != nil {
		return err
	}

	actionType := action.TypeCreate
	if typ == token.TypeArt2 {
		actionType = action.TypeMint
	}
	_action := &action.Action{
		Type:          actionType,
		Time:          r.clock.Now().Unix(),
		TokenId:       info.Id,
		Address:       address.ToLower(),
		UserPublicKey: info.PublicKey,
		Owner:         info.Owner,
		Hash:          art.Hash,
		Creator:       art.Creator,
		Maximum:       info.Maximum,
		Collection:    collection.ToLower(),
	}
	if _, err := r.actionUC.Add(c, _action); err != nil {
		return err
	}

	c.WithFields(log.Fields{
		"tokenId": info.Id,
		"address": address,
		"type":    typ,
	}).Info("token registered")
	return nil
}

// RegisterSeries reads the series contract's descriptor and records it as a
// collection. Re-registering refreshes the supply counter only.
func (r *Registrar) RegisterSeries(c bCtx.Ctx, address domain.Address) error {
	info, err := r.gateway.GetSeriesInfo(c, address)
	if err != nil {
		return err
	}

	_collection := &collection.Collection{
		SeriesId:    info.Id,
		Address:     address.ToLower(),
		Name:        info.Name,
		Symbol:      info.Symbol,
		Limit:       info.Limit,
		TotalSupply: info.TotalSupply,
	}
	if _, err := r.collectionUC.Add(c, _collection); err != nil {
		return err
	}

	c.WithFields(log.Fields{
		"seriesId": info.Id,
		"address":  address,
	}).Info("collection registered")
	return nil
}

// RegisterOffer reads the offer contract's state and records it as pending.
// The cached token id is resolved from the offered token's address when the
// token is already known.
func (r *Registrar) RegisterOffer(c bCtx.Ctx, address domain.Address) error {
	info, err := r.gateway.GetOfferInfo(c, address)
	if err != nil {
		return err
	}

	_offer := &offer.Offer{
		OfferId: info.Id,
		Address: address.ToLower(),
		Creator: info.Creator,
		Token:   info.Token,
		Price:   info.Price,
		Fee:     info.Fee,
		EndTime: info.EndTime,
		Status:  offer.StatusPending,
	}
	if _token, err := r.tokenRepo.FindOneByAddress(c, info.Token); err == nil {
		_offer.TokenId = _token.TokenId
	} else if err != domain.ErrNotFound {
		return err
	}

	if _, err := r.offerUC.Add(c, _offer); err != nil {
		return err
	}

	c.WithFields(log.Fields{
		"offerId": info.Id,
		"address": address,
	}).Info("offer registered")
	return nil
}
