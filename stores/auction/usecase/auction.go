package usecase

import (
	"github.com/viney-shih/goroutines"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/kmutex"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/auction"
)

type auctionUsecase struct {
	repo    auction.Repo
	bidRepo auction.BidRepo
	km      *kmutex.Kmutex
}

func NewAuctionUsecase(repo auction.Repo, bidRepo auction.BidRepo) auction.Usecase {
	return &auctionUsecase{
		repo:    repo,
		bidRepo: bidRepo,
		km:      kmutex.New(),
	}
}

func (u *auctionUsecase) Add(c ctx.Ctx, _auction *auction.Auction) (domain.AddResult, error) {
	u.km.Lock("saving_auction_" + _auction.AuctionId)
	defer u.km.Unlock("saving_auction_" + _auction.AuctionId)

	if _, err := u.repo.FindOne(c, _auction.AuctionId); err == nil {
		return domain.AddResultAlreadyExists, nil
	} else if err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": _auction.AuctionId,
		}).Error("repo.FindOne failed")
		return "", err
	}

	if err := u.repo.Create(c, _auction); err != nil {
		return "", err
	}
	return domain.AddResultSuccess, nil
}

func (u *auctionUsecase) AddBid(c ctx.Ctx, bid *auction.Bid) (domain.AddResult, error) {
	u.km.Lock("saving_bid_" + bid.BidId)
	defer u.km.Unlock("saving_bid_" + bid.BidId)

	if _, err := u.bidRepo.FindOne(c, bid.BidId); err == nil {
		return domain.AddResultAlreadyExists, nil
	} else if err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"err":   err,
			"bidId": bid.BidId,
		}).Error("bidRepo.FindOne failed")
		return "", err
	}

	if err := u.bidRepo.Create(c, bid); err != nil {
		return "", err
	}
	return domain.AddResultSuccess, nil
}

// SetFinishBid records the winning bid and marks the auction finished. The
// finishing bid is written once; replays of the finish event are no-ops.
func (u *auctionUsecase) SetFinishBid(c ctx.Ctx, bid *auction.Bid) error {
	if _, err := u.AddBid(c, bid); err != nil {
		return err
	}

	u.km.Lock("finishing_auction_" + bid.AuctionId)
	defer u.km.Unlock("finishing_auction_" + bid.AuctionId)

	_auction, err := u.repo.FindOne(c, bid.AuctionId)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": bid.AuctionId,
		}).Error("repo.FindOne failed")
		return err
	}
	if _auction.IsFinished() {
		return nil
	}

	return u.repo.Patch(c, bid.AuctionId, auction.PatchableAuction{FinishBidId: &bid.BidId})
}

func (u *auctionUsecase) GetByAuctionId(c ctx.Ctx, auctionId string) (*auction.AuctionWithDetails, error) {
	_auction, err := u.repo.FindOne(c, auctionId)
	if err != nil {
		return nil, err
	}
	return u.withDetails(c, _auction)
}

func (u *auctionUsecase) GetByToken(c ctx.Ctx, token domain.Address) ([]*auction.AuctionWithDetails, error) {
	auctions, err := u.repo.FindAll(c, auction.WithToken(token))
	if err != nil {
		return nil, err
	}

	res := make([]*auction.AuctionWithDetails, len(auctions))
	if len(auctions) == 0 {
		return res, nil
	}

	// batch load bid lists
	b := goroutines.NewBatch(10, goroutines.WithBatchSize(len(auctions)))
	defer b.Close()
	for i := 0; i < len(auctions); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			detailed, err := u.withDetails(c, auctions[idx])
			if err != nil {
				return nil, err
			}
			res[idx] = detailed
			return nil, nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		if ret.Error() != nil {
			return nil, ret.Error()
		}
	}
	return res, nil
}

func (u *auctionUsecase) withDetails(c ctx.Ctx, _auction *auction.Auction) (*auction.AuctionWithDetails, error) {
	bids, err := u.bidRepo.FindAll(c, auction.WithAuctionId(_auction.AuctionId))
	if err != nil {
		return nil, err
	}

	res := &auction.AuctionWithDetails{
		Auction:         *_auction,
		Bids:            bids,
		DisplayStartBid: _auction.StartBid.Display(),
		DisplayStepBid:  _auction.StepBid.Display(),
		DisplayFeeBid:   _auction.FeeBid.Display(),
	}
	if _auction.FinishBidId != nil {
		for _, bid := range bids {
			if bid.BidId == *_auction.FinishBidId {
				res.FinishBid = bid
				break
			}
		}
	}
	return res, nil
}
