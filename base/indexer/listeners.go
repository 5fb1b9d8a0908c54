package indexer

import (
	"golang.org/x/xerrors"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/auction"
	"github.com/tonart/goindexer/domain/ledger"
	"github.com/tonart/goindexer/domain/offer"
	"github.com/tonart/goindexer/domain/token"
)

func eventString(body *ledger.DecodedBody, key string) (string, error) {
	s, ok := body.Value[key].(string)
	if !ok {
		return "", xerrors.Errorf("event %s lacks field %s: %w", body.Name, key, ledger.ErrValidation)
	}
	return s, nil
}

// AuctionEventHandler consumes BidEvent and FinishEvent messages from one
// auction contract. The contract publishes the bidder under "bider".
// onFinished, when non-nil, runs after the finish bid is recorded; the
// contract emits nothing once finished, so callers use it to drop the
// listener.
func AuctionEventHandler(auctionUC auction.Usecase, auctionId string, onFinished func()) Handler {
	bidFromEvent := func(body *ledger.DecodedBody) (*auction.Bid, error) {
		id, err := eventString(body, "id")
		if err != nil {
			return nil, err
		}
		creator, err := eventString(body, "creator")
		if err != nil {
			return nil, err
		}
		_token, err := eventString(body, "token")
		if err != nil {
			return nil, err
		}
		bidder, err := eventString(body, "bider")
		if err != nil {
			return nil, err
		}
		value, err := eventString(body, "value")
		if err != nil {
			return nil, err
		}
		return &auction.Bid{
			BidId:     id,
			AuctionId: auctionId,
			Creator:   domain.Address(creator).ToLower(),
			Token:     domain.Address(_token).ToLower(),
			Bidder:    domain.Address(bidder).ToLower(),
			Value:     domain.Grams(value),
		}, nil
	}

	return func(c bCtx.Ctx, body *ledger.DecodedBody, createdAt int64) error {
		switch body.Name {
		case ledger.EventBid:
			bid, err := bidFromEvent(body)
			if err != nil {
				return err
			}
			_, err = auctionUC.AddBid(c, bid)
			return err
		case ledger.EventFinish:
			bid, err := bidFromEvent(body)
			if err != nil {
				return err
			}
			if err := auctionUC.SetFinishBid(c, bid); err != nil {
				return err
			}
			if onFinished != nil {
				onFinished()
			}
			return nil
		}
		return nil
	}
}

// OfferEventHandler consumes the terminal events of one offer contract.
// Both carry no payload; the event name is the whole message. onTerminal,
// when non-nil, runs once the offer has left pending, replays included.
func OfferEventHandler(offerUC offer.Usecase, offerId string, onTerminal func()) Handler {
	return func(c bCtx.Ctx, body *ledger.DecodedBody, createdAt int64) error {
		var status offer.Status
		switch body.Name {
		case ledger.EventOfferAccepted:
			status = offer.StatusAccepted
		case ledger.EventOfferFinished:
			status = offer.StatusExpired
		default:
			return nil
		}

		err := offerUC.SetStatus(c, offerId, status)
		if err == domain.ErrTerminalStatus {
			// replayed terminal event, the first one already settled it
			err = nil
		}
		if err == nil && onTerminal != nil {
			onTerminal()
		}
		return err
	}
}

// SeriesEventHandler consumes mint events from one series contract and
// registers the minted token.
func SeriesEventHandler(registrar *Registrar, series domain.Address) Handler {
	return func(c bCtx.Ctx, body *ledger.DecodedBody, createdAt int64) error {
		if body.Name != ledger.EventMint {
			return nil
		}
		tokenAddr, err := eventString(body, "token")
		if err != nil {
			return err
		}
		return registrar.RegisterToken(c, domain.Address(tokenAddr), token.TypeArt2, series)
	}
}

// SeriesRootEventHandler consumes newSerie events from the art2 root,
// attaches a mint listener to each announced series and records it as a
// collection. The listener goes on first: the announcement is consumed
// either way, so a failed descriptor read must not cost the mint stream.
func SeriesRootEventHandler(checker *MessageChecker, registrar *Registrar) Handler {
	return func(c bCtx.Ctx, body *ledger.DecodedBody, createdAt int64) error {
		if body.Name != ledger.EventNewSerie {
			return nil
		}
		seriesAddr, err := eventString(body, "serie")
		if err != nil {
			return err
		}
		series := domain.Address(seriesAddr).ToLower()
		checker.Register(series, ledger.ContractArt2Series, SeriesEventHandler(registrar, series))
		return registrar.RegisterSeries(c, series)
	}
}
