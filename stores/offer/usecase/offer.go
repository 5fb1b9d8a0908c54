package usecase

import (
	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/kmutex"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/offer"
)

type offerUsecase struct {
	repo offer.Repo
	km   *kmutex.Kmutex
}

func NewOfferUsecase(repo offer.Repo) offer.Usecase {
	return &offerUsecase{
		repo: repo,
		km:   kmutex.New(),
	}
}

func (u *offerUsecase) Add(c ctx.Ctx, _offer *offer.Offer) (domain.AddResult, error) {
	u.km.Lock("saving_offer_" + _offer.OfferId)
	defer u.km.Unlock("saving_offer_" + _offer.OfferId)

	if _, err := u.repo.FindOne(c, _offer.OfferId); err == nil {
		return domain.AddResultAlreadyExists, nil
	} else if err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"err":     err,
			"offerId": _offer.OfferId,
		}).Error("repo.FindOne failed")
		return "", err
	}

	if _offer.Status == "" {
		_offer.Status = offer.StatusPending
	}

	if err := u.repo.Create(c, _offer); err != nil {
		return "", err
	}
	return domain.AddResultSuccess, nil
}

func (u *offerUsecase) GetByOfferId(c ctx.Ctx, offerId string) (*offer.OfferWithDetails, error) {
	_offer, err := u.repo.FindOne(c, offerId)
	if err != nil {
		return nil, err
	}
	return withDetails(_offer), nil
}

func (u *offerUsecase) GetByTokenId(c ctx.Ctx, tokenId domain.TokenId, status *offer.Status) ([]*offer.OfferWithDetails, error) {
	opts := []offer.FindAllOptions{offer.WithTokenId(tokenId)}
	if status != nil {
		opts = append(opts, offer.WithStatus(*status))
	}
	return u.findAll(c, opts...)
}

func (u *offerUsecase) GetPending(c ctx.Ctx) ([]*offer.OfferWithDetails, error) {
	return u.findAll(c, offer.WithStatus(offer.StatusPending))
}

// SetStatus moves the offer to status. Terminal statuses are sticky; any
// transition out of one fails with domain.ErrTerminalStatus.
func (u *offerUsecase) SetStatus(c ctx.Ctx, offerId string, status offer.Status) error {
	u.km.Lock("saving_offer_" + offerId)
	defer u.km.Unlock("saving_offer_" + offerId)

	_offer, err := u.repo.FindOne(c, offerId)
	if err != nil {
		return err
	}
	if _offer.Status == status {
		return nil
	}
	if _offer.Status.IsTerminal() {
		return domain.ErrTerminalStatus
	}

	return u.repo.Patch(c, offerId, offer.PatchableOffer{Status: &status})
}

func (u *offerUsecase) findAll(c ctx.Ctx, opts ...offer.FindAllOptions) ([]*offer.OfferWithDetails, error) {
	offers, err := u.repo.FindAll(c, opts...)
	if err != nil {
		return nil, err
	}

	res := make([]*offer.OfferWithDetails, 0, len(offers))
	for _, _offer := range offers {
		res = append(res, withDetails(_offer))
	}
	return res, nil
}

func withDetails(_offer *offer.Offer) *offer.OfferWithDetails {
	return &offer.OfferWithDetails{
		Offer:        *_offer,
		DisplayPrice: _offer.Price.Display(),
		DisplayFee:   _offer.Fee.Display(),
	}
}
