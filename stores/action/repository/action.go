package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/action"
	"github.com/tonart/goindexer/service/query"
)

type actionRepoImpl struct {
	q query.Mongo
}

func NewActionRepo(q query.Mongo) action.Repo {
	return &actionRepoImpl{q}
}

func (im *actionRepoImpl) makeQuery(opts ...action.FindAllOptions) (bson.M, error) {
	options, err := action.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.TokenId != nil {
		query["tokenId"] = *options.TokenId
	}

	if options.Owner != nil {
		query["owner"] = *options.Owner
	}

	if options.UserPublicKey != nil {
		query["userPublicKey"] = *options.UserPublicKey
	}

	if options.Type != nil {
		query["action"] = *options.Type
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

func (im *actionRepoImpl) FindAll(ctx ctx.Ctx, opts ...action.FindAllOptions) ([]*action.Action, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, _ := action.GetFindAllOptions(opts...)
	offset, limit := makePagination(options.Offset, options.Limit)

	res := []*action.Action{}
	err = im.q.Search(ctx, domain.TableActions, offset, limit, makeSort(options.SortBy, options.SortDir), query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *actionRepoImpl) FindOne(ctx ctx.Ctx, id string) (*action.Action, error) {
	res := action.Action{}
	err := im.q.FindOne(ctx, domain.TableActions, bson.M{"id": id}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *actionRepoImpl) Count(ctx ctx.Ctx, opts ...action.FindAllOptions) (int, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableActions, query)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *actionRepoImpl) Create(ctx ctx.Ctx, _action *action.Action) error {
	if err := im.q.Insert(ctx, domain.TableActions, _action); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  _action.Id,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}
