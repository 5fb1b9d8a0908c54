package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/database/mongoclient"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/collection"
	"github.com/tonart/goindexer/service/query"
)

type collectionRepoImpl struct {
	q query.Mongo
}

func NewCollectionRepo(q query.Mongo) collection.Repo {
	return &collectionRepoImpl{q}
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

func (im *collectionRepoImpl) FindAll(ctx ctx.Ctx, opts ...collection.FindAllOptions) ([]*collection.Collection, error) {
	options, err := collection.GetFindAllOptions(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("collection.GetFindAllOptions")
		return nil, err
	}
	offset, limit := makePagination(options.Offset, options.Limit)

	res := []*collection.Collection{}
	err = im.q.Search(ctx, domain.TableCollections, offset, limit, makeSort(options.SortBy, options.SortDir), bson.M{}, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *collectionRepoImpl) FindOne(ctx ctx.Ctx, address domain.Address) (*collection.Collection, error) {
	res := collection.Collection{}
	err := im.q.FindOne(ctx, domain.TableCollections, bson.M{"address": address.ToLower()}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *collectionRepoImpl) Create(ctx ctx.Ctx, _collection *collection.Collection) error {
	if err := im.q.Insert(ctx, domain.TableCollections, _collection); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": _collection.Address,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *collectionRepoImpl) Patch(ctx ctx.Ctx, address domain.Address, patchable collection.PatchableCollection) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableCollections, bson.M{"address": address.ToLower()}, updater)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
			"updater": updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}
