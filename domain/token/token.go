package token

import (
	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/auction"
	"github.com/tonart/goindexer/domain/offer"
)

type Type string

const (
	// TypeArt1 tokens are deployed one by one from the root contract.
	TypeArt1 Type = "art1"
	// TypeArt2 tokens are minted from a series with a bounded supply.
	TypeArt2 Type = "art2"
)

type Token struct {
	TokenId       domain.TokenId `json:"id" bson:"tokenId"`
	Type          Type           `json:"type" bson:"type"`
	Address       domain.Address `json:"address" bson:"address"`
	UserPublicKey string         `json:"userPublicKey" bson:"userPublicKey"`
	Owner         domain.Address `json:"owner" bson:"owner"`
	Hash          string         `json:"hash" bson:"hash"`
	Creator       domain.Address `json:"creator" bson:"creator"`
	Maximum       *string        `json:"maximum,omitempty" bson:"maximum,omitempty"`
	Collection    domain.Address `json:"collection,omitempty" bson:"collection,omitempty"`
	AuctionId     *string        `json:"auctionId,omitempty" bson:"auctionId,omitempty"`
}

// TokenWithDetails joins the active auction and the token's offers at
// read time.
type TokenWithDetails struct {
	Token
	Auction *auction.AuctionWithDetails `json:"auction"`
	Offers  []*offer.OfferWithDetails   `json:"offers"`
}

type PatchableToken struct {
	Owner     *domain.Address `bson:"owner,omitempty"`
	Hash      *string         `bson:"hash,omitempty"`
	AuctionId *string         `bson:"auctionId,omitempty"`
}

type findAllOptions struct {
	SortBy        *string         `bson:"-"`
	SortDir       *domain.SortDir `bson:"-"`
	Offset        *int32          `bson:"-"`
	Limit         *int32          `bson:"-"`
	Owner         *domain.Address `bson:"owner"`
	UserPublicKey *string         `bson:"userPublicKey"`
	Type          *Type           `bson:"type"`
	Collection    *domain.Address `bson:"collection"`
}

type FindAllOptions func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptions) (findAllOptions, error) {
	res := findAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSort(sortby string, sortdir domain.SortDir) FindAllOptions {
	return func(options *findAllOptions) error {
		options.SortBy = &sortby
		options.SortDir = &sortdir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithOwner(owner domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		owner := owner.ToLower()
		options.Owner = &owner
		return nil
	}
}

func WithUserPublicKey(publicKey string) FindAllOptions {
	return func(options *findAllOptions) error {
		options.UserPublicKey = &publicKey
		return nil
	}
}

func WithType(typ Type) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Type = &typ
		return nil
	}
}

func WithCollection(collection domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		collection := collection.ToLower()
		options.Collection = &collection
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Token, error)
	// FindOne returns domain.ErrNotFound if the token does not exist.
	FindOne(c ctx.Ctx, tokenId domain.TokenId) (*Token, error)
	// FindOneByAddress returns domain.ErrNotFound if the token does not exist.
	FindOneByAddress(c ctx.Ctx, address domain.Address) (*Token, error)
	Count(c ctx.Ctx, opts ...FindAllOptions) (int, error)
	Create(c ctx.Ctx, token *Token) error
	Patch(c ctx.Ctx, tokenId domain.TokenId, patchable PatchableToken) error
}

type Usecase interface {
	Add(c ctx.Ctx, token *Token) (domain.AddResult, error)
	GetAll(c ctx.Ctx) ([]*TokenWithDetails, error)
	GetById(c ctx.Ctx, tokenId domain.TokenId) (*TokenWithDetails, error)
	GetByAddress(c ctx.Ctx, address domain.Address) (*TokenWithDetails, error)
	GetByOwner(c ctx.Ctx, owner domain.Address) ([]*TokenWithDetails, error)
	GetByUserPublicKey(c ctx.Ctx, publicKey string) ([]*TokenWithDetails, error)
	SetOwner(c ctx.Ctx, tokenId domain.TokenId, owner domain.Address) error
	SetHash(c ctx.Ctx, tokenId domain.TokenId, hash string) error
	// SetAuction stores the auction and points the token at it.
	SetAuction(c ctx.Ctx, tokenId domain.TokenId, auc *auction.Auction) error
}
