package action

import (
	"fmt"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/domain"
)

type Type string

const (
	TypeCreate      Type = "create"
	TypeChangeOwner Type = "changeOwner"
	TypeSetHash     Type = "setHash"
	TypeMint        Type = "mint"
)

// Action is an immutable derived domain event. One record exists per
// logical id regardless of which producer observed the event first.
type Action struct {
	Id            string         `json:"id" bson:"id"`
	Type          Type           `json:"action" bson:"action"`
	Time          int64          `json:"time" bson:"time"`
	TokenId       domain.TokenId `json:"tokenId" bson:"tokenId"`
	Address       domain.Address `json:"address" bson:"address"`
	UserPublicKey string         `json:"userPublicKey" bson:"userPublicKey"`
	Owner         domain.Address `json:"owner" bson:"owner"`
	PreviousOwner domain.Address `json:"previousOwner,omitempty" bson:"previousOwner,omitempty"`
	Hash          string         `json:"hash" bson:"hash"`
	PreviousHash  string         `json:"previousHash,omitempty" bson:"previousHash,omitempty"`
	Creator       domain.Address `json:"creator,omitempty" bson:"creator,omitempty"`
	Maximum       *string        `json:"maximum,omitempty" bson:"maximum,omitempty"`
	Collection    domain.Address `json:"collection,omitempty" bson:"collection,omitempty"`
}

// LogicalId derives the stored action id. Create and mint happen once per
// token. Owner and hash changes repeat over a token's lifetime (A to B and
// back to A is three distinct events), so their ids carry the emission time;
// replay protection for them lives in the manager, which compares against
// the latest recorded transition instead of the id.
func (a *Action) LogicalId() string {
	switch a.Type {
	case TypeCreate, TypeMint:
		return fmt.Sprintf("%s:%s", a.Type, a.TokenId)
	case TypeChangeOwner:
		return fmt.Sprintf("%s:%s:%s:%s:%d", a.Type, a.TokenId, a.PreviousOwner, a.Owner, a.Time)
	case TypeSetHash:
		return fmt.Sprintf("%s:%s:%s:%s:%d", a.Type, a.TokenId, a.PreviousHash, a.Hash, a.Time)
	}
	return fmt.Sprintf("%s:%s:%d", a.Type, a.TokenId, a.Time)
}

// SameTransition reports whether two actions describe the same state
// transition, regardless of when each producer observed it.
func (a *Action) SameTransition(b *Action) bool {
	if a.Type != b.Type || a.TokenId != b.TokenId {
		return false
	}
	switch a.Type {
	case TypeChangeOwner:
		return a.PreviousOwner.Equals(b.PreviousOwner) && a.Owner.Equals(b.Owner)
	case TypeSetHash:
		return a.PreviousHash == b.PreviousHash && a.Hash == b.Hash
	}
	return true
}

type findAllOptions struct {
	SortBy        *string         `bson:"-"`
	SortDir       *domain.SortDir `bson:"-"`
	Offset        *int32          `bson:"-"`
	Limit         *int32          `bson:"-"`
	TokenId       *domain.TokenId `bson:"tokenId"`
	Owner         *domain.Address `bson:"owner"`
	UserPublicKey *string         `bson:"userPublicKey"`
	Type          *Type           `bson:"action"`
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

func WithTokenId(tokenId domain.TokenId) FindAllOptions {
	return func(options *findAllOptions) error {
		options.TokenId = &tokenId
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

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Action, error)
	// FindOne returns domain.ErrNotFound if no action carries the id.
	FindOne(c ctx.Ctx, id string) (*Action, error)
	Count(c ctx.Ctx, opts ...FindAllOptions) (int, error)
	Create(c ctx.Ctx, action *Action) error
}

type Usecase interface {
	Add(c ctx.Ctx, action *Action) (domain.AddResult, error)
	GetAll(c ctx.Ctx) ([]*Action, error)
	GetByTokenId(c ctx.Ctx, tokenId domain.TokenId) ([]*Action, error)
	GetByOwner(c ctx.Ctx, owner domain.Address) ([]*Action, error)
	GetByUserPublicKey(c ctx.Ctx, publicKey string) ([]*Action, error)
}
