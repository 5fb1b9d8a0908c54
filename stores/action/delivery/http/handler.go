package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/delivery"
	"github.com/tonart/goindexer/base/validator"
	"github.com/tonart/goindexer/domain"
	dAction "github.com/tonart/goindexer/domain/action"
	"github.com/tonart/goindexer/middleware"
)

type handler struct {
	action dAction.Usecase
}

func New(e *echo.Echo, _action dAction.Usecase) {
	h := &handler{_action}
	e.GET("/actions", h.getActions, middleware.CacheHttp(10*time.Second))
}

func (h *handler) getActions(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		TokenId       *domain.TokenId `query:"tokenId"`
		Owner         *domain.Address `query:"owner"`
		UserPublicKey *string         `query:"userPublicKey"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	var (
		res []*dAction.Action
		err error
	)
	switch {
	case p.TokenId != nil:
		res, err = h.action.GetByTokenId(ctx, *p.TokenId)
	case p.Owner != nil:
		if !validator.IsValidAddress(string(*p.Owner)) {
			return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrInvalidAddress)
		}
		res, err = h.action.GetByOwner(ctx, *p.Owner)
	case p.UserPublicKey != nil:
		res, err = h.action.GetByUserPublicKey(ctx, *p.UserPublicKey)
	default:
		res, err = h.action.GetAll(ctx)
	}

	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}
