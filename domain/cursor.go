package domain

import (
	"github.com/tonart/goindexer/base/ctx"
)

const (
	CursorTokenRoot = "tokenRoot"
	CursorOfferRoot = "offerRoot"
)

// Cursor is a durable watcher counter, the next untried sequence id.
type Cursor struct {
	Name   string `bson:"name"`
	NextId uint64 `bson:"nextId"`
}

type CursorRepo interface {
	// Get returns 0 if the cursor has never been stored.
	Get(ctx.Ctx, string) (uint64, error)
	Set(ctx.Ctx, string, uint64) error
}
