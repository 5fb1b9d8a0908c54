package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/delivery"
	"github.com/tonart/goindexer/domain"
	dOffer "github.com/tonart/goindexer/domain/offer"
)

type handler struct {
	offer dOffer.Usecase
}

func New(e *echo.Echo, _offer dOffer.Usecase) {
	h := &handler{_offer}
	e.GET("/offers", h.getOffers)
}

func (h *handler) getOffers(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		TokenId *domain.TokenId `query:"tokenId"`
		Status  *dOffer.Status  `query:"status"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	var (
		res []*dOffer.OfferWithDetails
		err error
	)
	if p.TokenId != nil {
		res, err = h.offer.GetByTokenId(ctx, *p.TokenId, p.Status)
	} else {
		res, err = h.offer.GetPending(ctx)
	}

	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}
