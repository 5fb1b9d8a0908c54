package indexer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/ptr"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/ledger"
	lMocks "github.com/tonart/goindexer/domain/ledger/mocks"
	"github.com/tonart/goindexer/domain/mocks"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time {
	return c.now
}

func (c *stubClock) Sleep(_ bCtx.Ctx, _ time.Duration) {}

type messageCheckerSuite struct {
	suite.Suite

	gateway    *lMocks.Gateway
	watermarks *mocks.WatermarkRepo
	checker    *MessageChecker
}

func (s *messageCheckerSuite) SetupTest() {
	s.gateway = &lMocks.Gateway{}
	s.watermarks = &mocks.WatermarkRepo{}
	s.checker = NewMessageChecker(s.gateway, s.watermarks)
}

func TestMessageCheckerSuite(t *testing.T) {
	suite.Run(t, new(messageCheckerSuite))
}

func (s *messageCheckerSuite) TestRegisterIsIdempotent() {
	addr := domain.Address("0:AA")
	calls := 0
	s.checker.Register(addr, ledger.ContractOffer, func(bCtx.Ctx, *ledger.DecodedBody, int64) error {
		calls++
		return nil
	})
	s.checker.Register(addr, ledger.ContractOffer, func(bCtx.Ctx, *ledger.DecodedBody, int64) error {
		s.Fail("second registration must not replace the first")
		return nil
	})
	s.True(s.checker.Registered(domain.Address("0:aa")))

	s.watermarks.On("Get", mock.Anything, domain.Address("0:aa")).Return(int64(0), nil).Once()
	s.gateway.On("OutboundMessages", mock.Anything, domain.Address("0:aa"), int64(0), messageBatchLimit).
		Return([]*ledger.Message{{Body: "b", CreatedAt: 5}}, nil).Once()
	s.watermarks.On("Set", mock.Anything, domain.Address("0:aa"), int64(5)).Return(nil).Once()
	s.gateway.On("DecodeMessageBody", mock.Anything, ledger.ContractOffer, "b").
		Return(&ledger.DecodedBody{Name: ledger.EventOfferAccepted}, nil).Once()

	s.Require().NoError(s.checker.Check(bCtx.Background(), addr))
	s.Equal(1, calls)
}

func (s *messageCheckerSuite) TestUnregisterDropsListener() {
	addr := domain.Address("0:AA")
	s.checker.Register(addr, ledger.ContractOffer, func(bCtx.Ctx, *ledger.DecodedBody, int64) error {
		s.Fail("unregistered listener must not run")
		return nil
	})
	s.Require().True(s.checker.Registered(addr))

	s.checker.Unregister(addr)
	s.False(s.checker.Registered(addr))

	err := s.checker.Check(bCtx.Background(), addr)
	s.Require().Error(err)
	s.gateway.AssertNotCalled(s.T(), "OutboundMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// a dropped address can be claimed again
	s.checker.Register(addr, ledger.ContractOffer, func(bCtx.Ctx, *ledger.DecodedBody, int64) error {
		return nil
	})
	s.True(s.checker.Registered(addr))
}

func (s *messageCheckerSuite) TestWatermarkAdvancesBeforeDecode() {
	addr := domain.Address("0:aa")
	watermarkSet := false

	s.checker.Register(addr, ledger.ContractDirectAuction, func(bCtx.Ctx, *ledger.DecodedBody, int64) error {
		return nil
	})

	s.watermarks.On("Get", mock.Anything, addr).Return(int64(10), nil).Once()
	s.gateway.On("OutboundMessages", mock.Anything, addr, int64(10), messageBatchLimit).
		Return([]*ledger.Message{
			{Body: "m1", CreatedAt: 11},
			{Body: "m2", CreatedAt: 12},
		}, nil).Once()
	s.watermarks.On("Set", mock.Anything, addr, int64(12)).Run(func(mock.Arguments) {
		watermarkSet = true
	}).Return(nil).Once()
	s.gateway.On("DecodeMessageBody", mock.Anything, ledger.ContractDirectAuction, mock.Anything).Run(func(mock.Arguments) {
		s.True(watermarkSet, "watermark must be persisted before decoding")
	}).Return(nil, ledger.ErrUndecodable).Twice()

	s.Require().NoError(s.checker.Check(bCtx.Background(), addr))
	s.watermarks.AssertExpectations(s.T())
}

func (s *messageCheckerSuite) TestAbortedMessagesSkipped() {
	addr := domain.Address("0:aa")
	var seen []string

	s.checker.Register(addr, ledger.ContractDirectAuction, func(_ bCtx.Ctx, body *ledger.DecodedBody, _ int64) error {
		seen = append(seen, body.Name)
		return nil
	})

	s.watermarks.On("Get", mock.Anything, addr).Return(int64(0), nil).Once()
	s.gateway.On("OutboundMessages", mock.Anything, addr, int64(0), messageBatchLimit).
		Return([]*ledger.Message{
			{Body: "aborted", CreatedAt: 1, Aborted: ptr.Bool(true)},
			{Body: "landed", CreatedAt: 2, Aborted: ptr.Bool(false)},
			{Body: "unknown", CreatedAt: 3},
		}, nil).Once()
	s.watermarks.On("Set", mock.Anything, addr, int64(3)).Return(nil).Once()
	s.gateway.On("DecodeMessageBody", mock.Anything, ledger.ContractDirectAuction, "landed").
		Return(&ledger.DecodedBody{Name: "BidEvent"}, nil).Once()
	// missing abort status counts as landed
	s.gateway.On("DecodeMessageBody", mock.Anything, ledger.ContractDirectAuction, "unknown").
		Return(&ledger.DecodedBody{Name: "FinishEvent"}, nil).Once()

	s.Require().NoError(s.checker.Check(bCtx.Background(), addr))
	s.Equal([]string{"BidEvent", "FinishEvent"}, seen)
	s.gateway.AssertNotCalled(s.T(), "DecodeMessageBody", mock.Anything, mock.Anything, "aborted")
}

func (s *messageCheckerSuite) TestEmptyBatchLeavesWatermark() {
	addr := domain.Address("0:aa")
	s.checker.Register(addr, ledger.ContractOffer, func(bCtx.Ctx, *ledger.DecodedBody, int64) error {
		return nil
	})

	s.watermarks.On("Get", mock.Anything, addr).Return(int64(7), nil).Once()
	s.gateway.On("OutboundMessages", mock.Anything, addr, int64(7), messageBatchLimit).
		Return([]*ledger.Message{}, nil).Once()

	s.Require().NoError(s.checker.Check(bCtx.Background(), addr))
	s.watermarks.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything, mock.Anything)
}
