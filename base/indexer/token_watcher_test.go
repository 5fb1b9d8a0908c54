package indexer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/action"
	aMocks "github.com/tonart/goindexer/domain/action/mocks"
	"github.com/tonart/goindexer/domain/ledger"
	lMocks "github.com/tonart/goindexer/domain/ledger/mocks"
	"github.com/tonart/goindexer/domain/mocks"
	oMocks "github.com/tonart/goindexer/domain/offer/mocks"
	"github.com/tonart/goindexer/domain/token"
	tMocks "github.com/tonart/goindexer/domain/token/mocks"
)

type tokenWatcherSuite struct {
	suite.Suite

	gateway  *lMocks.Gateway
	cursors  *mocks.CursorRepo
	tokenUC  *tMocks.Usecase
	actionUC *aMocks.Usecase
	im       *TokenWatcher
}

func (s *tokenWatcherSuite) SetupTest() {
	s.gateway = &lMocks.Gateway{}
	s.cursors = &mocks.CursorRepo{}
	s.tokenUC = &tMocks.Usecase{}
	s.actionUC = &aMocks.Usecase{}
	registrar := NewRegistrar(&RegistrarCfg{
		Gateway:   s.gateway,
		TokenRepo: &tMocks.Repo{},
		TokenUC:   s.tokenUC,
		ActionUC:  s.actionUC,
		OfferUC:   &oMocks.Usecase{},
		Clock:     &stubClock{now: time.Unix(1000, 0)},
	})
	s.im = NewTokenWatcher(&TokenWatcherCfg{
		Gateway:   s.gateway,
		Registrar: registrar,
		Cursors:   s.cursors,
		Root:      domain.Address("0:root"),
		Clock:     &stubClock{now: time.Unix(1000, 0)},
	})
}

func TestTokenWatcherSuite(t *testing.T) {
	suite.Run(t, new(tokenWatcherSuite))
}

func (s *tokenWatcherSuite) TestProbeHoldsWhileUndeployed() {
	s.cursors.On("Get", mock.Anything, domain.CursorTokenRoot).Return(uint64(3), nil).Once()
	s.gateway.On("TokenAddress", mock.Anything, domain.Address("0:root"), uint64(3)).
		Return(domain.Address("0:aa"), nil).Once()
	s.gateway.On("FetchSnapshot", mock.Anything, domain.Address("0:aa")).
		Return(nil, ledger.ErrAccountNotFound).Once()

	err := s.im.Probe(bCtx.Background())
	s.True(ledger.IsBenignExecError(err))
	s.cursors.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything, mock.Anything)
}

func (s *tokenWatcherSuite) TestProbeRegistersAndAdvances() {
	snapshot := &ledger.Snapshot{Address: domain.Address("0:aa"), Boc: "boc"}

	s.cursors.On("Get", mock.Anything, domain.CursorTokenRoot).Return(uint64(3), nil).Once()
	s.gateway.On("TokenAddress", mock.Anything, domain.Address("0:root"), uint64(3)).
		Return(domain.Address("0:aa"), nil).Once()
	s.gateway.On("FetchSnapshot", mock.Anything, domain.Address("0:aa")).Return(snapshot, nil).Twice()
	s.gateway.On("GetTokenInfo", mock.Anything, snapshot, ledger.ContractArtToken).Return(&ledger.TokenInfo{
		Id:        domain.TokenId("3"),
		PublicKey: "pk",
		Owner:     domain.Address("0:01"),
	}, nil).Once()
	s.gateway.On("GetArtInfo", mock.Anything, snapshot, ledger.ContractArtToken).Return(&ledger.ArtInfo{
		Hash:    "h0",
		Creator: domain.Address("0:02"),
	}, nil).Once()
	s.tokenUC.On("Add", mock.Anything, mock.MatchedBy(func(t *token.Token) bool {
		return t.TokenId == domain.TokenId("3") && t.Type == token.TypeArt1 && t.Hash == "h0"
	})).Return(domain.AddResultSuccess, nil).Once()
	s.actionUC.On("Add", mock.Anything, mock.MatchedBy(func(a *action.Action) bool {
		return a.Type == action.TypeCreate && a.TokenId == domain.TokenId("3") && a.Time == 1000
	})).Return(domain.AddResultSuccess, nil).Once()
	s.cursors.On("Set", mock.Anything, domain.CursorTokenRoot, uint64(4)).Return(nil).Once()

	s.Require().NoError(s.im.Probe(bCtx.Background()))
	s.cursors.AssertExpectations(s.T())
	s.tokenUC.AssertExpectations(s.T())
	s.actionUC.AssertExpectations(s.T())
}
