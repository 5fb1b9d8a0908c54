package usecase

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/ptr"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/auction"
	"github.com/tonart/goindexer/domain/auction/mocks"
)

type auctionUsecaseSuite struct {
	suite.Suite

	repo    *mocks.Repo
	bidRepo *mocks.BidRepo
	im      auction.Usecase
}

func (s *auctionUsecaseSuite) SetupTest() {
	s.repo = &mocks.Repo{}
	s.bidRepo = &mocks.BidRepo{}
	s.im = NewAuctionUsecase(s.repo, s.bidRepo)
}

func TestAuctionUsecaseSuite(t *testing.T) {
	suite.Run(t, new(auctionUsecaseSuite))
}

func (s *auctionUsecaseSuite) TestAddIdempotent() {
	c := ctx.Background()
	_auction := &auction.Auction{AuctionId: "a1"}

	s.repo.On("FindOne", mock.Anything, "a1").Return(nil, domain.ErrNotFound).Once()
	s.repo.On("Create", mock.Anything, _auction).Return(nil).Once()

	res, err := s.im.Add(c, _auction)
	s.Require().NoError(err)
	s.Equal(domain.AddResultSuccess, res)

	s.repo.On("FindOne", mock.Anything, "a1").Return(_auction, nil).Once()

	res, err = s.im.Add(c, _auction)
	s.Require().NoError(err)
	s.Equal(domain.AddResultAlreadyExists, res)
	s.repo.AssertExpectations(s.T())
}

func (s *auctionUsecaseSuite) TestSetFinishBidMarksOnce() {
	c := ctx.Background()
	bid := &auction.Bid{BidId: "b1", AuctionId: "a1", Value: domain.Grams("5000000000")}

	s.bidRepo.On("FindOne", mock.Anything, "b1").Return(nil, domain.ErrNotFound).Once()
	s.bidRepo.On("Create", mock.Anything, bid).Return(nil).Once()
	s.repo.On("FindOne", mock.Anything, "a1").Return(&auction.Auction{AuctionId: "a1"}, nil).Once()
	s.repo.On("Patch", mock.Anything, "a1", auction.PatchableAuction{FinishBidId: &bid.BidId}).Return(nil).Once()

	s.Require().NoError(s.im.SetFinishBid(c, bid))
	s.repo.AssertExpectations(s.T())
}

func (s *auctionUsecaseSuite) TestSetFinishBidReplayIsNoop() {
	c := ctx.Background()
	bid := &auction.Bid{BidId: "b1", AuctionId: "a1"}
	finished := &auction.Auction{AuctionId: "a1", FinishBidId: ptr.String("b1")}

	s.bidRepo.On("FindOne", mock.Anything, "b1").Return(bid, nil).Once()
	s.repo.On("FindOne", mock.Anything, "a1").Return(finished, nil).Once()

	s.Require().NoError(s.im.SetFinishBid(c, bid))
	s.repo.AssertNotCalled(s.T(), "Patch", mock.Anything, mock.Anything, mock.Anything)
}

// Bid lists load concurrently; the response order must still follow the
// repo's order.
func (s *auctionUsecaseSuite) TestGetByTokenKeepsOrder() {
	c := ctx.Background()

	auctions := make([]*auction.Auction, 25)
	for i := range auctions {
		auctions[i] = &auction.Auction{
			AuctionId: strconv.Itoa(i),
			Token:     domain.Address("0:aa"),
			StartBid:  domain.Grams("1000000000"),
		}
	}
	s.repo.On("FindAll", mock.Anything, mock.Anything).Return(auctions, nil).Once()
	s.bidRepo.On("FindAll", mock.Anything, mock.Anything).Return([]*auction.Bid{}, nil)

	res, err := s.im.GetByToken(c, domain.Address("0:aa"))
	s.Require().NoError(err)
	s.Require().Len(res, len(auctions))
	for i, detailed := range res {
		s.Equal(auctions[i].AuctionId, detailed.AuctionId)
	}
}

func (s *auctionUsecaseSuite) TestGetByAuctionIdJoinsBids() {
	c := ctx.Background()
	finishBidId := "b2"
	_auction := &auction.Auction{
		AuctionId:   "a1",
		StartBid:    domain.Grams("1000000000"),
		FinishBidId: &finishBidId,
	}
	bids := []*auction.Bid{
		{BidId: "b1", AuctionId: "a1"},
		{BidId: "b2", AuctionId: "a1"},
	}

	s.repo.On("FindOne", mock.Anything, "a1").Return(_auction, nil).Once()
	s.bidRepo.On("FindAll", mock.Anything, mock.Anything).Return(bids, nil).Once()

	res, err := s.im.GetByAuctionId(c, "a1")
	s.Require().NoError(err)
	s.Len(res.Bids, 2)
	s.Require().NotNil(res.FinishBid)
	s.Equal("b2", res.FinishBid.BidId)
	s.Equal("1", res.DisplayStartBid)
}
