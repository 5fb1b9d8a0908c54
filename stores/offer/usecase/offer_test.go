package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/offer"
	"github.com/tonart/goindexer/domain/offer/mocks"
)

type offerUsecaseSuite struct {
	suite.Suite

	repo *mocks.Repo
	im   offer.Usecase
}

func (s *offerUsecaseSuite) SetupTest() {
	s.repo = &mocks.Repo{}
	s.im = NewOfferUsecase(s.repo)
}

func TestOfferUsecaseSuite(t *testing.T) {
	suite.Run(t, new(offerUsecaseSuite))
}

func (s *offerUsecaseSuite) TestAddDefaultsToPending() {
	c := ctx.Background()
	_offer := &offer.Offer{OfferId: "o1"}

	s.repo.On("FindOne", mock.Anything, "o1").Return(nil, domain.ErrNotFound).Once()
	s.repo.On("Create", mock.Anything, _offer).Return(nil).Once()

	res, err := s.im.Add(c, _offer)
	s.Require().NoError(err)
	s.Equal(domain.AddResultSuccess, res)
	s.Equal(offer.StatusPending, _offer.Status)
}

func (s *offerUsecaseSuite) TestSetStatusFromPending() {
	c := ctx.Background()
	accepted := offer.StatusAccepted

	s.repo.On("FindOne", mock.Anything, "o1").Return(&offer.Offer{OfferId: "o1", Status: offer.StatusPending}, nil).Once()
	s.repo.On("Patch", mock.Anything, "o1", offer.PatchableOffer{Status: &accepted}).Return(nil).Once()

	s.Require().NoError(s.im.SetStatus(c, "o1", offer.StatusAccepted))
	s.repo.AssertExpectations(s.T())
}

func (s *offerUsecaseSuite) TestSetStatusOutOfTerminalRejected() {
	c := ctx.Background()

	s.repo.On("FindOne", mock.Anything, "o1").Return(&offer.Offer{OfferId: "o1", Status: offer.StatusAccepted}, nil).Once()

	err := s.im.SetStatus(c, "o1", offer.StatusExpired)
	s.Equal(domain.ErrTerminalStatus, err)
	s.repo.AssertNotCalled(s.T(), "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *offerUsecaseSuite) TestSetStatusSameStatusIsNoop() {
	c := ctx.Background()

	s.repo.On("FindOne", mock.Anything, "o1").Return(&offer.Offer{OfferId: "o1", Status: offer.StatusExpired}, nil).Once()

	s.Require().NoError(s.im.SetStatus(c, "o1", offer.StatusExpired))
	s.repo.AssertNotCalled(s.T(), "Patch", mock.Anything, mock.Anything, mock.Anything)
}
