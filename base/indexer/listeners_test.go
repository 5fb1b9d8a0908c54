package indexer

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/auction"
	aucMocks "github.com/tonart/goindexer/domain/auction/mocks"
	"github.com/tonart/goindexer/domain/collection"
	colMocks "github.com/tonart/goindexer/domain/collection/mocks"
	"github.com/tonart/goindexer/domain/ledger"
	lMocks "github.com/tonart/goindexer/domain/ledger/mocks"
	"github.com/tonart/goindexer/domain/mocks"
	"github.com/tonart/goindexer/domain/offer"
	oMocks "github.com/tonart/goindexer/domain/offer/mocks"
)

func bidEventBody(name string) *ledger.DecodedBody {
	return &ledger.DecodedBody{
		Name: name,
		Value: map[string]interface{}{
			"id":      "b1",
			"creator": "0:C1",
			"token":   "0:aa",
			"bider":   "0:B1",
			"value":   "5000000000",
		},
	}
}

func TestAuctionEventHandlerBid(t *testing.T) {
	req := require.New(t)
	auctionUC := &aucMocks.Usecase{}
	handler := AuctionEventHandler(auctionUC, "auc1", nil)

	auctionUC.On("AddBid", mock.Anything, &auction.Bid{
		BidId:     "b1",
		AuctionId: "auc1",
		Creator:   domain.Address("0:c1"),
		Token:     domain.Address("0:aa"),
		Bidder:    domain.Address("0:b1"),
		Value:     domain.Grams("5000000000"),
	}).Return(domain.AddResultSuccess, nil).Once()

	req.NoError(handler(bCtx.Background(), bidEventBody(ledger.EventBid), 5))
	auctionUC.AssertExpectations(t)
}

func TestAuctionEventHandlerFinish(t *testing.T) {
	req := require.New(t)
	auctionUC := &aucMocks.Usecase{}
	finished := 0
	handler := AuctionEventHandler(auctionUC, "auc1", func() { finished++ })

	auctionUC.On("SetFinishBid", mock.Anything, mock.MatchedBy(func(b *auction.Bid) bool {
		return b.BidId == "b1" && b.AuctionId == "auc1"
	})).Return(nil).Once()

	req.NoError(handler(bCtx.Background(), bidEventBody(ledger.EventFinish), 5))
	req.Equal(1, finished)
	auctionUC.AssertExpectations(t)

	// a bid event must not settle the auction
	auctionUC.On("AddBid", mock.Anything, mock.Anything).Return(domain.AddResultSuccess, nil).Once()
	req.NoError(handler(bCtx.Background(), bidEventBody(ledger.EventBid), 6))
	req.Equal(1, finished)
}

func TestAuctionEventHandlerIgnoresOtherEvents(t *testing.T) {
	req := require.New(t)
	auctionUC := &aucMocks.Usecase{}
	handler := AuctionEventHandler(auctionUC, "auc1", nil)

	req.NoError(handler(bCtx.Background(), &ledger.DecodedBody{Name: "somethingElse"}, 5))
	auctionUC.AssertNotCalled(t, "AddBid", mock.Anything, mock.Anything)
}

func TestOfferEventHandler(t *testing.T) {
	req := require.New(t)
	offerUC := &oMocks.Usecase{}
	terminal := 0
	handler := OfferEventHandler(offerUC, "o1", func() { terminal++ })

	offerUC.On("SetStatus", mock.Anything, "o1", offer.StatusAccepted).Return(nil).Once()
	req.NoError(handler(bCtx.Background(), &ledger.DecodedBody{Name: ledger.EventOfferAccepted}, 5))
	req.Equal(1, terminal)

	// a replayed terminal event still reports terminal
	offerUC.On("SetStatus", mock.Anything, "o1", offer.StatusExpired).Return(domain.ErrTerminalStatus).Once()
	req.NoError(handler(bCtx.Background(), &ledger.DecodedBody{Name: ledger.EventOfferFinished}, 6))
	req.Equal(2, terminal)

	offerUC.AssertExpectations(t)
}

func TestSeriesRootEventHandlerRegistersSeries(t *testing.T) {
	req := require.New(t)
	gateway := &lMocks.Gateway{}
	collectionUC := &colMocks.Usecase{}
	checker := NewMessageChecker(gateway, &mocks.WatermarkRepo{})
	registrar := NewRegistrar(&RegistrarCfg{Gateway: gateway, CollectionUC: collectionUC})
	handler := SeriesRootEventHandler(checker, registrar)

	gateway.On("GetSeriesInfo", mock.Anything, domain.Address("0:ss")).Return(&ledger.SeriesInfo{
		Id:          "s1",
		Limit:       "100",
		Name:        "Serie One",
		Symbol:      "S1",
		TotalSupply: "0",
	}, nil).Twice()
	collectionUC.On("Add", mock.Anything, &collection.Collection{
		SeriesId:    "s1",
		Address:     domain.Address("0:ss"),
		Name:        "Serie One",
		Symbol:      "S1",
		Limit:       "100",
		TotalSupply: "0",
	}).Return(domain.AddResultSuccess, nil).Once()

	req.NoError(handler(bCtx.Background(), &ledger.DecodedBody{
		Name:  ledger.EventNewSerie,
		Value: map[string]interface{}{"id": "s1", "serie": "0:SS"},
	}, 5))
	req.True(checker.Registered(domain.Address("0:ss")))

	// replay keeps the existing listener and only refreshes the collection
	collectionUC.On("Add", mock.Anything, mock.Anything).Return(domain.AddResultAlreadyExists, nil).Once()
	req.NoError(handler(bCtx.Background(), &ledger.DecodedBody{
		Name:  ledger.EventNewSerie,
		Value: map[string]interface{}{"id": "s1", "serie": "0:SS"},
	}, 6))
	collectionUC.AssertExpectations(t)
}

// The mint listener survives a failed series descriptor read.
func TestSeriesRootEventHandlerKeepsListenerOnReadFailure(t *testing.T) {
	req := require.New(t)
	gateway := &lMocks.Gateway{}
	checker := NewMessageChecker(gateway, &mocks.WatermarkRepo{})
	registrar := NewRegistrar(&RegistrarCfg{Gateway: gateway, CollectionUC: &colMocks.Usecase{}})
	handler := SeriesRootEventHandler(checker, registrar)

	gateway.On("GetSeriesInfo", mock.Anything, domain.Address("0:ss")).
		Return(nil, xerrors.New("node unreachable")).Once()

	req.Error(handler(bCtx.Background(), &ledger.DecodedBody{
		Name:  ledger.EventNewSerie,
		Value: map[string]interface{}{"id": "s1", "serie": "0:SS"},
	}, 5))
	req.True(checker.Registered(domain.Address("0:ss")))
}
