package indexer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/ptr"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/action"
	aMocks "github.com/tonart/goindexer/domain/action/mocks"
	"github.com/tonart/goindexer/domain/auction"
	aucMocks "github.com/tonart/goindexer/domain/auction/mocks"
	"github.com/tonart/goindexer/domain/ledger"
	lMocks "github.com/tonart/goindexer/domain/ledger/mocks"
	"github.com/tonart/goindexer/domain/mocks"
	oMocks "github.com/tonart/goindexer/domain/offer/mocks"
	"github.com/tonart/goindexer/domain/token"
	tMocks "github.com/tonart/goindexer/domain/token/mocks"
)

type reconcilerSuite struct {
	suite.Suite

	gateway   *lMocks.Gateway
	tokenRepo *tMocks.Repo
	tokenUC   *tMocks.Usecase
	actionUC  *aMocks.Usecase
	auctionUC *aucMocks.Usecase
	offerUC   *oMocks.Usecase
	clock     *stubClock
	im        *Reconciler
}

func (s *reconcilerSuite) SetupTest() {
	s.gateway = &lMocks.Gateway{}
	s.tokenRepo = &tMocks.Repo{}
	s.tokenUC = &tMocks.Usecase{}
	s.actionUC = &aMocks.Usecase{}
	s.auctionUC = &aucMocks.Usecase{}
	s.offerUC = &oMocks.Usecase{}
	s.clock = &stubClock{now: time.Unix(1000, 0)}
	s.im = NewReconciler(&ReconcilerCfg{
		Gateway:   s.gateway,
		Checker:   NewMessageChecker(s.gateway, &mocks.WatermarkRepo{}),
		TokenRepo: s.tokenRepo,
		TokenUC:   s.tokenUC,
		ActionUC:  s.actionUC,
		AuctionUC: s.auctionUC,
		OfferUC:   s.offerUC,
		Clock:     s.clock,
	})
}

func TestReconcilerSuite(t *testing.T) {
	suite.Run(t, new(reconcilerSuite))
}

func (s *reconcilerSuite) cachedToken() *token.Token {
	return &token.Token{
		TokenId: domain.TokenId("1"),
		Type:    token.TypeArt1,
		Address: domain.Address("0:aa"),
		Owner:   domain.Address("0:01"),
		Hash:    "h0",
	}
}

func (s *reconcilerSuite) snapshot() *ledger.Snapshot {
	return &ledger.Snapshot{Address: domain.Address("0:aa"), Boc: "boc"}
}

func (s *reconcilerSuite) expectReads(info *ledger.TokenInfo, art *ledger.ArtInfo) {
	s.gateway.On("GetTokenInfo", mock.Anything, s.snapshot(), ledger.ContractArtToken).Return(info, nil).Once()
	s.gateway.On("GetArtInfo", mock.Anything, s.snapshot(), ledger.ContractArtToken).Return(art, nil).Once()
}

func (s *reconcilerSuite) TestUnchangedTokenEmitsNothing() {
	s.expectReads(
		&ledger.TokenInfo{Id: domain.TokenId("1"), Owner: domain.Address("0:01")},
		&ledger.ArtInfo{Hash: "h0"},
	)

	s.Require().NoError(s.im.ReconcileToken(bCtx.Background(), s.cachedToken(), s.snapshot()))
	s.actionUC.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything)
	s.tokenUC.AssertNotCalled(s.T(), "SetHash", mock.Anything, mock.Anything, mock.Anything)
	s.tokenUC.AssertNotCalled(s.T(), "SetOwner", mock.Anything, mock.Anything, mock.Anything)
}

func (s *reconcilerSuite) TestHashChange() {
	s.expectReads(
		&ledger.TokenInfo{Id: domain.TokenId("1"), Owner: domain.Address("0:01")},
		&ledger.ArtInfo{Hash: "h1"},
	)
	s.actionUC.On("Add", mock.Anything, mock.MatchedBy(func(a *action.Action) bool {
		return a.Type == action.TypeSetHash && a.Hash == "h1" && a.PreviousHash == "h0"
	})).Return(domain.AddResultSuccess, nil).Once()
	s.tokenUC.On("SetHash", mock.Anything, domain.TokenId("1"), "h1").Return(nil).Once()

	s.Require().NoError(s.im.ReconcileToken(bCtx.Background(), s.cachedToken(), s.snapshot()))
	s.actionUC.AssertExpectations(s.T())
	s.tokenUC.AssertExpectations(s.T())
}

func (s *reconcilerSuite) TestOwnerChange() {
	s.expectReads(
		&ledger.TokenInfo{Id: domain.TokenId("1"), Owner: domain.Address("0:02")},
		&ledger.ArtInfo{Hash: "h0"},
	)
	s.actionUC.On("Add", mock.Anything, mock.MatchedBy(func(a *action.Action) bool {
		return a.Type == action.TypeChangeOwner &&
			a.Owner == domain.Address("0:02") &&
			a.PreviousOwner == domain.Address("0:01")
	})).Return(domain.AddResultSuccess, nil).Once()
	s.tokenUC.On("SetOwner", mock.Anything, domain.TokenId("1"), domain.Address("0:02")).Return(nil).Once()

	s.Require().NoError(s.im.ReconcileToken(bCtx.Background(), s.cachedToken(), s.snapshot()))
	s.actionUC.AssertExpectations(s.T())
	s.tokenUC.AssertExpectations(s.T())
}

func (s *reconcilerSuite) TestManagerChangeAttachesAuction() {
	s.expectReads(
		&ledger.TokenInfo{Id: domain.TokenId("1"), Owner: domain.Address("0:01"), Manager: domain.Address("0:cc")},
		&ledger.ArtInfo{Hash: "h0"},
	)
	s.gateway.On("GetAuctionInfo", mock.Anything, domain.Address("0:cc")).Return(&ledger.AuctionInfo{
		Id:      "auc1",
		Token:   domain.Address("0:aa"),
		EndTime: 2000,
	}, nil).Once()
	s.tokenUC.On("SetAuction", mock.Anything, domain.TokenId("1"), mock.MatchedBy(func(a *auction.Auction) bool {
		return a.AuctionId == "auc1" && a.Address == domain.Address("0:cc")
	})).Return(nil).Once()

	s.Require().NoError(s.im.ReconcileToken(bCtx.Background(), s.cachedToken(), s.snapshot()))
	s.tokenUC.AssertExpectations(s.T())
	s.True(s.im.checker.Registered(domain.Address("0:cc")))
}

func (s *reconcilerSuite) TestUncommittedManagerSuppressed() {
	s.expectReads(
		&ledger.TokenInfo{Id: domain.TokenId("1"), Owner: domain.Address("0:01"), Manager: domain.Address("0:cc")},
		&ledger.ArtInfo{Hash: "h0"},
	)
	s.gateway.On("GetAuctionInfo", mock.Anything, domain.Address("0:cc")).
		Return(nil, &ledger.ExecError{Code: ledger.ExecCodeAccountUncommitted, Message: "account has no data"}).Once()

	s.Require().NoError(s.im.ReconcileToken(bCtx.Background(), s.cachedToken(), s.snapshot()))
	s.tokenUC.AssertNotCalled(s.T(), "SetAuction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *reconcilerSuite) TestExpiredUnfinishedAuctionTriggersFinish() {
	_token := s.cachedToken()
	_token.AuctionId = ptr.String("auc1")

	s.expectReads(
		&ledger.TokenInfo{Id: domain.TokenId("1"), Owner: domain.Address("0:01"), Manager: domain.Address("0:cc")},
		&ledger.ArtInfo{Hash: "h0"},
	)
	s.auctionUC.On("GetByAuctionId", mock.Anything, "auc1").Return(&auction.AuctionWithDetails{
		Auction: auction.Auction{AuctionId: "auc1", Address: domain.Address("0:cc"), EndTime: 900},
	}, nil).Once()
	s.gateway.On("FinishAuction", mock.Anything, domain.Address("0:cc")).Return(nil).Once()

	s.Require().NoError(s.im.ReconcileToken(bCtx.Background(), _token, s.snapshot()))
	s.gateway.AssertExpectations(s.T())
}

func (s *reconcilerSuite) TestFinishedAuctionLeftAlone() {
	_token := s.cachedToken()
	_token.AuctionId = ptr.String("auc1")

	s.expectReads(
		&ledger.TokenInfo{Id: domain.TokenId("1"), Owner: domain.Address("0:01"), Manager: domain.Address("0:cc")},
		&ledger.ArtInfo{Hash: "h0"},
	)
	s.auctionUC.On("GetByAuctionId", mock.Anything, "auc1").Return(&auction.AuctionWithDetails{
		Auction: auction.Auction{
			AuctionId:   "auc1",
			Address:     domain.Address("0:cc"),
			EndTime:     900,
			FinishBidId: ptr.String("b9"),
		},
	}, nil).Once()

	s.Require().NoError(s.im.ReconcileToken(bCtx.Background(), _token, s.snapshot()))
	s.gateway.AssertNotCalled(s.T(), "FinishAuction", mock.Anything, mock.Anything)
}

// A listener attached while the auction ran must be dropped once the cache
// records the finish bid.
func (s *reconcilerSuite) TestFinishedAuctionDropsListener() {
	_token := s.cachedToken()
	_token.AuctionId = ptr.String("auc1")
	s.im.listenAuction(domain.Address("0:cc"), "auc1")
	s.Require().True(s.im.checker.Registered(domain.Address("0:cc")))

	s.expectReads(
		&ledger.TokenInfo{Id: domain.TokenId("1"), Owner: domain.Address("0:01"), Manager: domain.Address("0:cc")},
		&ledger.ArtInfo{Hash: "h0"},
	)
	s.auctionUC.On("GetByAuctionId", mock.Anything, "auc1").Return(&auction.AuctionWithDetails{
		Auction: auction.Auction{
			AuctionId:   "auc1",
			Address:     domain.Address("0:cc"),
			EndTime:     900,
			FinishBidId: ptr.String("b9"),
		},
	}, nil).Once()

	s.Require().NoError(s.im.ReconcileToken(bCtx.Background(), _token, s.snapshot()))
	s.False(s.im.checker.Registered(domain.Address("0:cc")))
}

// The listener itself unhooks on a finish event, without waiting for the
// next reconcile cycle.
func (s *reconcilerSuite) TestAuctionListenerDropsItselfOnFinish() {
	s.im.listenAuction(domain.Address("0:cc"), "auc1")

	s.auctionUC.On("SetFinishBid", mock.Anything, mock.Anything).Return(nil).Once()
	wm := &mocks.WatermarkRepo{}
	wm.On("Get", mock.Anything, domain.Address("0:cc")).Return(int64(0), nil).Once()
	wm.On("Set", mock.Anything, domain.Address("0:cc"), int64(5)).Return(nil).Once()
	s.im.checker.watermarks = wm
	s.gateway.On("OutboundMessages", mock.Anything, domain.Address("0:cc"), int64(0), messageBatchLimit).
		Return([]*ledger.Message{{Body: "fin", CreatedAt: 5}}, nil).Once()
	s.gateway.On("DecodeMessageBody", mock.Anything, ledger.ContractDirectAuction, "fin").
		Return(bidEventBody(ledger.EventFinish), nil).Once()

	s.Require().NoError(s.im.checker.Check(bCtx.Background(), domain.Address("0:cc")))
	s.False(s.im.checker.Registered(domain.Address("0:cc")))
}
