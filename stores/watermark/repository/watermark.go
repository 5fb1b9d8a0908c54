package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/service/query"
)

type watermarkRepoImpl struct {
	q query.Mongo
}

func NewWatermarkRepo(q query.Mongo) domain.WatermarkRepo {
	return &watermarkRepoImpl{q}
}

func (im *watermarkRepoImpl) Get(ctx ctx.Ctx, address domain.Address) (int64, error) {
	res := domain.Watermark{}
	err := im.q.FindOne(ctx, domain.TableWatermarks, bson.M{"address": address.ToLower()}, &res)
	if err == query.ErrNotFound {
		return 0, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to q.FindOne")
		return 0, err
	}
	return res.LastMessageTime, nil
}

func (im *watermarkRepoImpl) Set(ctx ctx.Ctx, address domain.Address, lastMessageTime int64) error {
	watermark := domain.Watermark{Address: address.ToLower(), LastMessageTime: lastMessageTime}
	if err := im.q.Upsert(ctx, domain.TableWatermarks, bson.M{"address": address.ToLower()}, watermark); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}
