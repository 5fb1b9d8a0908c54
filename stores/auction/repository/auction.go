package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/database/mongoclient"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/auction"
	"github.com/tonart/goindexer/service/query"
)

type auctionRepoImpl struct {
	q query.Mongo
}

func NewAuctionRepo(q query.Mongo) auction.Repo {
	return &auctionRepoImpl{q}
}

func (im *auctionRepoImpl) makeQuery(opts ...auction.FindAllOptions) (bson.M, error) {
	options, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.Token != nil {
		query["token"] = *options.Token
	}

	if options.Address != nil {
		query["address"] = *options.Address
	}

	return query, nil
}

func makeSort(sortBy *string, sortDir *domain.SortDir) string {
	if sortBy == nil {
		return "_id"
	}
	if sortDir != nil && *sortDir == domain.SortDirDesc {
		return "-" + *sortBy
	}
	return *sortBy
}

func makePagination(offset, limit *int32) (int, int) {
	res := [2]int{}
	if offset != nil {
		res[0] = int(*offset)
	}
	if limit != nil {
		res[1] = int(*limit)
	}
	return res[0], res[1]
}

func (im *auctionRepoImpl) FindAll(ctx ctx.Ctx, opts ...auction.FindAllOptions) ([]*auction.Auction, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, _ := auction.GetFindAllOptions(opts...)
	offset, limit := makePagination(options.Offset, options.Limit)

	res := []*auction.Auction{}
	err = im.q.Search(ctx, domain.TableAuctions, offset, limit, makeSort(options.SortBy, options.SortDir), query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *auctionRepoImpl) FindOne(ctx ctx.Ctx, auctionId string) (*auction.Auction, error) {
	res := auction.Auction{}
	err := im.q.FindOne(ctx, domain.TableAuctions, bson.M{"auctionId": auctionId}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *auctionRepoImpl) Create(ctx ctx.Ctx, _auction *auction.Auction) error {
	if err := im.q.Insert(ctx, domain.TableAuctions, _auction); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": _auction.AuctionId,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *auctionRepoImpl) Patch(ctx ctx.Ctx, auctionId string, patchable auction.PatchableAuction) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableAuctions, bson.M{"auctionId": auctionId}, updater)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
			"updater":   updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}
