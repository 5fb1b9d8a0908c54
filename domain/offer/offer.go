package offer

import (
	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/domain"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusExpired  Status = "expired"
)

// IsTerminal reports whether no further transition is valid.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusExpired
}

type Offer struct {
	OfferId  string         `json:"offerId" bson:"offerId"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenId"`
	Address  domain.Address `json:"address" bson:"address"`
	Creator  domain.Address `json:"creator" bson:"creator"`
	Token    domain.Address `json:"token" bson:"token"`
	Price    domain.Grams   `json:"price" bson:"price"`
	Fee      domain.Grams   `json:"fee" bson:"fee"`
	EndTime  int64          `json:"endTime" bson:"endTime"`
	Status   Status         `json:"status" bson:"status"`
}

// OfferWithDetails adds display prices at read time.
type OfferWithDetails struct {
	Offer
	DisplayPrice string `json:"displayPrice"`
	DisplayFee   string `json:"displayFee"`
}

type PatchableOffer struct {
	Status *Status `bson:"status,omitempty"`
}

type findAllOptions struct {
	SortBy  *string         `bson:"-"`
	SortDir *domain.SortDir `bson:"-"`
	Offset  *int32          `bson:"-"`
	Limit   *int32          `bson:"-"`
	TokenId *domain.TokenId `bson:"tokenId"`
	Address *domain.Address `bson:"address"`
	Status  *Status         `bson:"status"`
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

func WithAddress(address domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		address := address.ToLower()
		options.Address = &address
		return nil
	}
}

func WithStatus(status Status) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Status = &status
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Offer, error)
	// FindOne returns domain.ErrNotFound if the offer does not exist.
	FindOne(c ctx.Ctx, offerId string) (*Offer, error)
	Create(c ctx.Ctx, offer *Offer) error
	Patch(c ctx.Ctx, offerId string, patchable PatchableOffer) error
}

type Usecase interface {
	Add(c ctx.Ctx, offer *Offer) (domain.AddResult, error)
	GetByOfferId(c ctx.Ctx, offerId string) (*OfferWithDetails, error)
	GetByTokenId(c ctx.Ctx, tokenId domain.TokenId, status *Status) ([]*OfferWithDetails, error)
	GetPending(c ctx.Ctx) ([]*OfferWithDetails, error)
	// SetStatus rejects transitions out of a terminal status with
	// domain.ErrTerminalStatus.
	SetStatus(c ctx.Ctx, offerId string, status Status) error
}
