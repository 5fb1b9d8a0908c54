package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/auction"
	"github.com/tonart/goindexer/service/query"
)

type bidRepoImpl struct {
	q query.Mongo
}

func NewBidRepo(q query.Mongo) auction.BidRepo {
	return &bidRepoImpl{q}
}

func (im *bidRepoImpl) FindAll(ctx ctx.Ctx, opts ...auction.BidFindAllOptions) ([]*auction.Bid, error) {
	options, err := auction.GetBidFindAllOptions(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("auction.GetBidFindAllOptions")
		return nil, err
	}

	query := bson.M{}
	if options.AuctionId != nil {
		query["auctionId"] = *options.AuctionId
	}

	res := []*auction.Bid{}
	err = im.q.Search(ctx, domain.TableBids, 0, 0, "_id", query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *bidRepoImpl) FindOne(ctx ctx.Ctx, bidId string) (*auction.Bid, error) {
	res := auction.Bid{}
	err := im.q.FindOne(ctx, domain.TableBids, bson.M{"bidId": bidId}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"bidId": bidId,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *bidRepoImpl) Create(ctx ctx.Ctx, bid *auction.Bid) error {
	if err := im.q.Insert(ctx, domain.TableBids, bid); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"bidId": bid.BidId,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}
