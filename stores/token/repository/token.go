package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/database/mongoclient"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/token"
	"github.com/tonart/goindexer/service/query"
)

type tokenRepoImpl struct {
	q query.Mongo
}

func NewTokenRepo(q query.Mongo) token.Repo {
	return &tokenRepoImpl{q}
}

func (im *tokenRepoImpl) makeQuery(opts ...token.FindAllOptions) (bson.M, error) {
	options, err := token.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.Owner != nil {
		query["owner"] = *options.Owner
	}

	if options.UserPublicKey != nil {
		query["userPublicKey"] = *options.UserPublicKey
	}

	if options.Type != nil {
		query["type"] = *options.Type
	}

	if options.Collection != nil {
		query["collection"] = *options.Collection
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

func (im *tokenRepoImpl) FindAll(ctx ctx.Ctx, opts ...token.FindAllOptions) ([]*token.Token, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, _ := token.GetFindAllOptions(opts...)
	offset, limit := makePagination(options.Offset, options.Limit)

	res := []*token.Token{}
	err = im.q.Search(ctx, domain.TableTokens, offset, limit, makeSort(options.SortBy, options.SortDir), query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *tokenRepoImpl) FindOne(ctx ctx.Ctx, tokenId domain.TokenId) (*token.Token, error) {
	return im.findOne(ctx, bson.M{"tokenId": tokenId})
}

func (im *tokenRepoImpl) FindOneByAddress(ctx ctx.Ctx, address domain.Address) (*token.Token, error) {
	return im.findOne(ctx, bson.M{"address": address.ToLower()})
}

func (im *tokenRepoImpl) findOne(ctx ctx.Ctx, qry bson.M) (*token.Token, error) {
	res := token.Token{}
	err := im.q.FindOne(ctx, domain.TableTokens, qry, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *tokenRepoImpl) Count(ctx ctx.Ctx, opts ...token.FindAllOptions) (int, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableTokens, query)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *tokenRepoImpl) Create(ctx ctx.Ctx, _token *token.Token) error {
	if err := im.q.Insert(ctx, domain.TableTokens, _token); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": _token.TokenId,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *tokenRepoImpl) Patch(ctx ctx.Ctx, tokenId domain.TokenId, patchable token.PatchableToken) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableTokens, bson.M{"tokenId": tokenId}, updater)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
			"updater": updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}
