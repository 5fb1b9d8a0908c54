package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/collection"
	"github.com/tonart/goindexer/domain/collection/mocks"
)

type collectionUsecaseSuite struct {
	suite.Suite

	repo *mocks.Repo
	im   collection.Usecase
}

func (s *collectionUsecaseSuite) SetupTest() {
	s.repo = &mocks.Repo{}
	s.im = NewCollectionUsecase(s.repo)
}

func TestCollectionUsecaseSuite(t *testing.T) {
	suite.Run(t, new(collectionUsecaseSuite))
}

func (s *collectionUsecaseSuite) sample() *collection.Collection {
	return &collection.Collection{
		SeriesId:    "s1",
		Address:     domain.Address("0:SS"),
		Name:        "Serie One",
		Symbol:      "S1",
		Limit:       "100",
		TotalSupply: "3",
	}
}

func (s *collectionUsecaseSuite) TestAdd() {
	c := ctx.Background()
	_collection := s.sample()

	s.repo.On("FindOne", mock.Anything, domain.Address("0:ss")).Return(nil, domain.ErrNotFound).Once()
	s.repo.On("Create", mock.Anything, _collection).Return(nil).Once()

	res, err := s.im.Add(c, _collection)
	s.Require().NoError(err)
	s.Equal(domain.AddResultSuccess, res)
	s.Equal(domain.Address("0:ss"), _collection.Address)
	s.repo.AssertExpectations(s.T())
}

func (s *collectionUsecaseSuite) TestAddAlreadyExists() {
	c := ctx.Background()
	_collection := s.sample()

	existing := s.sample()
	existing.Address = domain.Address("0:ss")
	s.repo.On("FindOne", mock.Anything, domain.Address("0:ss")).Return(existing, nil).Once()

	res, err := s.im.Add(c, _collection)
	s.Require().NoError(err)
	s.Equal(domain.AddResultAlreadyExists, res)
	s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	s.repo.AssertNotCalled(s.T(), "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *collectionUsecaseSuite) TestAddRefreshesSupply() {
	c := ctx.Background()
	_collection := s.sample()
	_collection.TotalSupply = "4"

	existing := s.sample()
	existing.Address = domain.Address("0:ss")
	s.repo.On("FindOne", mock.Anything, domain.Address("0:ss")).Return(existing, nil).Once()
	supply := "4"
	s.repo.On("Patch", mock.Anything, domain.Address("0:ss"), collection.PatchableCollection{
		TotalSupply: &supply,
	}).Return(nil).Once()

	res, err := s.im.Add(c, _collection)
	s.Require().NoError(err)
	s.Equal(domain.AddResultAlreadyExists, res)
	s.repo.AssertExpectations(s.T())
	s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *collectionUsecaseSuite) TestGetByAddressLowersCase() {
	c := ctx.Background()
	existing := s.sample()
	existing.Address = domain.Address("0:ss")
	s.repo.On("FindOne", mock.Anything, domain.Address("0:ss")).Return(existing, nil).Once()

	res, err := s.im.GetByAddress(c, domain.Address("0:SS"))
	s.Require().NoError(err)
	s.Equal(existing, res)
}
