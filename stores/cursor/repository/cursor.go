package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/service/query"
)

type cursorRepoImpl struct {
	q query.Mongo
}

func NewCursorRepo(q query.Mongo) domain.CursorRepo {
	return &cursorRepoImpl{q}
}

func (im *cursorRepoImpl) Get(ctx ctx.Ctx, name string) (uint64, error) {
	res := domain.Cursor{}
	err := im.q.FindOne(ctx, domain.TableCursors, bson.M{"name": name}, &res)
	if err == query.ErrNotFound {
		return 0, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"name": name,
		}).Error("failed to q.FindOne")
		return 0, err
	}
	return res.NextId, nil
}

func (im *cursorRepoImpl) Set(ctx ctx.Ctx, name string, nextId uint64) error {
	cursor := domain.Cursor{Name: name, NextId: nextId}
	if err := im.q.Upsert(ctx, domain.TableCursors, bson.M{"name": name}, cursor); err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"name": name,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}
