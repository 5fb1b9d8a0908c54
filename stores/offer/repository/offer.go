package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/database/mongoclient"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/offer"
	"github.com/tonart/goindexer/service/query"
)

type offerRepoImpl struct {
	q query.Mongo
}

func NewOfferRepo(q query.Mongo) offer.Repo {
	return &offerRepoImpl{q}
}

func (im *offerRepoImpl) makeQuery(opts ...offer.FindAllOptions) (bson.M, error) {
	options, err := offer.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.TokenId != nil {
		query["tokenId"] = *options.TokenId
	}

	if options.Address != nil {
		query["address"] = *options.Address
	}

	if options.Status != nil {
		query["status"] = *options.Status
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

func (im *offerRepoImpl) FindAll(ctx ctx.Ctx, opts ...offer.FindAllOptions) ([]*offer.Offer, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, _ := offer.GetFindAllOptions(opts...)
	offset, limit := makePagination(options.Offset, options.Limit)

	res := []*offer.Offer{}
	err = im.q.Search(ctx, domain.TableOffers, offset, limit, makeSort(options.SortBy, options.SortDir), query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *offerRepoImpl) FindOne(ctx ctx.Ctx, offerId string) (*offer.Offer, error) {
	res := offer.Offer{}
	err := im.q.FindOne(ctx, domain.TableOffers, bson.M{"offerId": offerId}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *offerRepoImpl) Create(ctx ctx.Ctx, _offer *offer.Offer) error {
	if err := im.q.Insert(ctx, domain.TableOffers, _offer); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"offerId": _offer.OfferId,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *offerRepoImpl) Patch(ctx ctx.Ctx, offerId string, patchable offer.PatchableOffer) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableOffers, bson.M{"offerId": offerId}, updater)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
			"updater": updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}
