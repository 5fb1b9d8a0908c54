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
	mAuction "github.com/tonart/goindexer/domain/auction/mocks"
	"github.com/tonart/goindexer/domain/offer"
	mOffer "github.com/tonart/goindexer/domain/offer/mocks"
	"github.com/tonart/goindexer/domain/token"
	mToken "github.com/tonart/goindexer/domain/token/mocks"
)

type tokenUsecaseSuite struct {
	suite.Suite

	repo      *mToken.Repo
	auctionUC *mAuction.Usecase
	offerUC   *mOffer.Usecase
	im        token.Usecase
}

func (s *tokenUsecaseSuite) SetupTest() {
	s.repo = &mToken.Repo{}
	s.auctionUC = &mAuction.Usecase{}
	s.offerUC = &mOffer.Usecase{}
	s.im = NewTokenUsecase(s.repo, s.auctionUC, s.offerUC)
}

func TestTokenUsecaseSuite(t *testing.T) {
	suite.Run(t, new(tokenUsecaseSuite))
}

func (s *tokenUsecaseSuite) TestAddIdempotent() {
	c := ctx.Background()
	_token := &token.Token{TokenId: domain.TokenId("3")}

	s.repo.On("FindOne", mock.Anything, domain.TokenId("3")).Return(nil, domain.ErrNotFound).Once()
	s.repo.On("Create", mock.Anything, _token).Return(nil).Once()

	res, err := s.im.Add(c, _token)
	s.Require().NoError(err)
	s.Equal(domain.AddResultSuccess, res)

	s.repo.On("FindOne", mock.Anything, domain.TokenId("3")).Return(_token, nil).Once()

	res, err = s.im.Add(c, _token)
	s.Require().NoError(err)
	s.Equal(domain.AddResultAlreadyExists, res)
}

// Details load concurrently; the response order must still follow the
// repo's order.
func (s *tokenUsecaseSuite) TestGetAllKeepsOrder() {
	c := ctx.Background()

	tokens := make([]*token.Token, 25)
	for i := range tokens {
		tokens[i] = &token.Token{TokenId: domain.TokenId(strconv.Itoa(i))}
	}
	s.repo.On("FindAll", mock.Anything).Return(tokens, nil).Once()
	s.offerUC.On("GetByTokenId", mock.Anything, mock.Anything, (*offer.Status)(nil)).
		Return([]*offer.OfferWithDetails{}, nil)

	res, err := s.im.GetAll(c)
	s.Require().NoError(err)
	s.Require().Len(res, len(tokens))
	for i, detailed := range res {
		s.Equal(tokens[i].TokenId, detailed.TokenId)
	}
}

func (s *tokenUsecaseSuite) TestGetByIdJoinsAuctionAndOffers() {
	c := ctx.Background()
	_token := &token.Token{
		TokenId:   domain.TokenId("3"),
		AuctionId: ptr.String("a1"),
	}
	detailedAuction := &auction.AuctionWithDetails{Auction: auction.Auction{AuctionId: "a1"}}
	offers := []*offer.OfferWithDetails{{Offer: offer.Offer{OfferId: "o1"}}}

	s.repo.On("FindOne", mock.Anything, domain.TokenId("3")).Return(_token, nil).Once()
	s.auctionUC.On("GetByAuctionId", mock.Anything, "a1").Return(detailedAuction, nil).Once()
	s.offerUC.On("GetByTokenId", mock.Anything, domain.TokenId("3"), (*offer.Status)(nil)).Return(offers, nil).Once()

	res, err := s.im.GetById(c, domain.TokenId("3"))
	s.Require().NoError(err)
	s.Require().NotNil(res.Auction)
	s.Equal("a1", res.Auction.AuctionId)
	s.Len(res.Offers, 1)
}

func (s *tokenUsecaseSuite) TestGetByIdToleratesMissingAuction() {
	c := ctx.Background()
	_token := &token.Token{
		TokenId:   domain.TokenId("3"),
		AuctionId: ptr.String("a1"),
	}

	s.repo.On("FindOne", mock.Anything, domain.TokenId("3")).Return(_token, nil).Once()
	s.auctionUC.On("GetByAuctionId", mock.Anything, "a1").Return(nil, domain.ErrNotFound).Once()
	s.offerUC.On("GetByTokenId", mock.Anything, domain.TokenId("3"), (*offer.Status)(nil)).Return(nil, nil).Once()

	res, err := s.im.GetById(c, domain.TokenId("3"))
	s.Require().NoError(err)
	s.Nil(res.Auction)
}

func (s *tokenUsecaseSuite) TestSetAuction() {
	c := ctx.Background()
	_auction := &auction.Auction{AuctionId: "a1"}

	s.auctionUC.On("Add", mock.Anything, _auction).Return(domain.AddResultSuccess, nil).Once()
	s.repo.On("Patch", mock.Anything, domain.TokenId("3"), token.PatchableToken{AuctionId: &_auction.AuctionId}).Return(nil).Once()

	s.Require().NoError(s.im.SetAuction(c, domain.TokenId("3"), _auction))
	s.repo.AssertExpectations(s.T())
}
