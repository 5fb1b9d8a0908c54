package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/delivery"
	"github.com/tonart/goindexer/base/validator"
	"github.com/tonart/goindexer/domain"
	dToken "github.com/tonart/goindexer/domain/token"
	"github.com/tonart/goindexer/middleware"
)

type handler struct {
	token dToken.Usecase
}

func New(e *echo.Echo, _token dToken.Usecase) {
	h := &handler{_token}
	e.GET("/tokens", h.getTokens, middleware.CacheHttp(10*time.Second))
	e.GET("/tokens/:tokenId", h.getToken, middleware.CacheHttp(10*time.Second))
}

func (h *handler) getTokens(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Owner         *domain.Address `query:"owner"`
		UserPublicKey *string         `query:"userPublicKey"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	var (
		res []*dToken.TokenWithDetails
		err error
	)
	switch {
	case p.Owner != nil:
		if !validator.IsValidAddress(string(*p.Owner)) {
			return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrInvalidAddress)
		}
		res, err = h.token.GetByOwner(ctx, *p.Owner)
	case p.UserPublicKey != nil:
		res, err = h.token.GetByUserPublicKey(ctx, *p.UserPublicKey)
	default:
		res, err = h.token.GetAll(ctx)
	}

	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) getToken(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		TokenId domain.TokenId `param:"tokenId"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if _, err := p.TokenId.Uint64(); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrInvalidNumberFormat)
	}

	res, err := h.token.GetById(ctx, p.TokenId)
	if err == domain.ErrNotFound {
		return delivery.MakeJsonResp(_ctx, http.StatusNotFound, err)
	} else if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}
