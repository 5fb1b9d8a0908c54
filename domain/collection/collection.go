package collection

import (
	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/domain"
)

// Collection is a cached series contract. TotalSupply is refreshed on
// re-registration; everything else is fixed at deploy time.
type Collection struct {
	SeriesId    string         `json:"seriesId" bson:"seriesId"`
	Address     domain.Address `json:"address" bson:"address"`
	Name        string         `json:"name" bson:"name"`
	Symbol      string         `json:"symbol" bson:"symbol"`
	Limit       string         `json:"limit" bson:"limit"`
	TotalSupply string         `json:"totalSupply" bson:"totalSupply"`
}

type PatchableCollection struct {
	TotalSupply *string `bson:"totalSupply,omitempty"`
}

type findAllOptions struct {
	SortBy  *string         `bson:"-"`
	SortDir *domain.SortDir `bson:"-"`
	Offset  *int32          `bson:"-"`
	Limit   *int32          `bson:"-"`
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

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Collection, error)
	// FindOne returns domain.ErrNotFound if no collection sits at the address.
	FindOne(c ctx.Ctx, address domain.Address) (*Collection, error)
	Create(c ctx.Ctx, collection *Collection) error
	Patch(c ctx.Ctx, address domain.Address, patchable PatchableCollection) error
}

type Usecase interface {
	// Add records the collection once; a re-registration only refreshes
	// the supply counter.
	Add(c ctx.Ctx, collection *Collection) (domain.AddResult, error)
	GetAll(c ctx.Ctx) ([]*Collection, error)
	GetByAddress(c ctx.Ctx, address domain.Address) (*Collection, error)
}
