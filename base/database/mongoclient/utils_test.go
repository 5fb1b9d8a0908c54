package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tonart/goindexer/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type PatchableAuction struct {
		Finished *bool  `bson:"finished,omitempty"`
		BidCount *int   `bson:"bidCount,omitempty"`
		Nft      string `bson:"nft"`
		Bidder   string `bson:"bidder"`
	}

	patchable := &PatchableAuction{}
	patchable.Finished = ptr.Bool(false)
	patchable.BidCount = ptr.Int(3)
	patchable.Bidder = "0:aa"

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"finished": false,
			"bidCount": 3,
			// nft is empty, so ignore
			"bidder": "0:aa",
		},
		updater,
	)
}
