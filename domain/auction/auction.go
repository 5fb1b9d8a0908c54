package auction

import (
	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/domain"
)

// Auction mirrors the state of one auction contract. FinishBidId moves
// from absent to a bid id exactly once.
type Auction struct {
	AuctionId   string         `json:"auctionId" bson:"auctionId"`
	Address     domain.Address `json:"address" bson:"address"`
	Creator     domain.Address `json:"creator" bson:"creator"`
	Token       domain.Address `json:"token" bson:"token"`
	StartBid    domain.Grams   `json:"startBid" bson:"startBid"`
	StepBid     domain.Grams   `json:"stepBid" bson:"stepBid"`
	FeeBid      domain.Grams   `json:"feeBid" bson:"feeBid"`
	StartTime   int64          `json:"startTime" bson:"startTime"`
	EndTime     int64          `json:"endTime" bson:"endTime"`
	FinishBidId *string        `json:"finishBidId,omitempty" bson:"finishBidId,omitempty"`
}

func (a *Auction) IsFinished() bool {
	return a.FinishBidId != nil
}

// Bid is append-only, recorded from decoded auction events.
type Bid struct {
	BidId     string         `json:"bidId" bson:"bidId"`
	AuctionId string         `json:"auctionId" bson:"auctionId"`
	Creator   domain.Address `json:"creator" bson:"creator"`
	Token     domain.Address `json:"token" bson:"token"`
	Bidder    domain.Address `json:"bidder" bson:"bidder"`
	Value     domain.Grams   `json:"value" bson:"value"`
}

// AuctionWithDetails joins the bid history and display prices at read time.
type AuctionWithDetails struct {
	Auction
	Bids            []*Bid `json:"bids"`
	FinishBid       *Bid   `json:"finishBid"`
	DisplayStartBid string `json:"displayStartBid"`
	DisplayStepBid  string `json:"displayStepBid"`
	DisplayFeeBid   string `json:"displayFeeBid"`
}

type PatchableAuction struct {
	FinishBidId *string `bson:"finishBidId,omitempty"`
}

type findAllOptions struct {
	SortBy  *string         `bson:"-"`
	SortDir *domain.SortDir `bson:"-"`
	Offset  *int32          `bson:"-"`
	Limit   *int32          `bson:"-"`
	Token   *domain.Address `bson:"token"`
	Address *domain.Address `bson:"address"`
}

type FindAllOptions func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptions) (findAllOptions, error) {
	res := findAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSort(sortby string, sortdir domain.SortDir) FindAllOptions {
	return func(options *findAllOptions) error {
		options.SortBy = &sortby
		options.SortDir = &sortdir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithToken(token domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		token := token.ToLower()
		options.Token = &token
		return nil
	}
}

func WithAddress(address domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		address := address.ToLower()
		options.Address = &address
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Auction, error)
	// FindOne returns domain.ErrNotFound if the auction does not exist.
	FindOne(c ctx.Ctx, auctionId string) (*Auction, error)
	Create(c ctx.Ctx, auction *Auction) error
	Patch(c ctx.Ctx, auctionId string, patchable PatchableAuction) error
}

type BidRepo interface {
	FindAll(c ctx.Ctx, opts ...BidFindAllOptions) ([]*Bid, error)
	// FindOne returns domain.ErrNotFound if the bid does not exist.
	FindOne(c ctx.Ctx, bidId string) (*Bid, error)
	Create(c ctx.Ctx, bid *Bid) error
}

type bidFindAllOptions struct {
	AuctionId *string `bson:"auctionId"`
}

type BidFindAllOptions func(*bidFindAllOptions) error

func GetBidFindAllOptions(opts ...BidFindAllOptions) (bidFindAllOptions, error) {
	res := bidFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithAuctionId(auctionId string) BidFindAllOptions {
	return func(options *bidFindAllOptions) error {
		options.AuctionId = &auctionId
		return nil
	}
}

type Usecase interface {
	Add(c ctx.Ctx, auction *Auction) (domain.AddResult, error)
	AddBid(c ctx.Ctx, bid *Bid) (domain.AddResult, error)
	// SetFinishBid records the bid and marks the auction finished. Once a
	// finishing bid is set, later calls leave it untouched.
	SetFinishBid(c ctx.Ctx, bid *Bid) error
	GetByAuctionId(c ctx.Ctx, auctionId string) (*AuctionWithDetails, error)
	GetByToken(c ctx.Ctx, token domain.Address) ([]*AuctionWithDetails, error)
}
