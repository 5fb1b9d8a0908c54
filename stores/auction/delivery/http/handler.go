package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/delivery"
	"github.com/tonart/goindexer/base/validator"
	"github.com/tonart/goindexer/domain"
	dAuction "github.com/tonart/goindexer/domain/auction"
)

type handler struct {
	auction dAuction.Usecase
}

func New(e *echo.Echo, _auction dAuction.Usecase) {
	h := &handler{_auction}
	e.GET("/auctions", h.getAuctions)
	e.GET("/auctions/:auctionId", h.getAuction)
}

func (h *handler) getAuctions(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Token *domain.Address `query:"token"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if p.Token == nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "missing token")
	}
	if !validator.IsValidAddress(string(*p.Token)) {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	res, err := h.auction.GetByToken(ctx, *p.Token)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) getAuction(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		AuctionId string `param:"auctionId"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	res, err := h.auction.GetByAuctionId(ctx, p.AuctionId)
	if err == domain.ErrNotFound {
		return delivery.MakeJsonResp(_ctx, http.StatusNotFound, err)
	} else if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}
