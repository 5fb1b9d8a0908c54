package domain

import (
	"github.com/tonart/goindexer/base/ctx"
)

// Watermark is the creation time of the last ingested outbound message for
// one contract address.
type Watermark struct {
	Address         Address `bson:"address"`
	LastMessageTime int64   `bson:"lastMessageTime"`
}

type WatermarkRepo interface {
	// Get returns 0 if no watermark has been stored for the address yet.
	Get(ctx.Ctx, Address) (int64, error)
	Set(ctx.Ctx, Address, int64) error
}
