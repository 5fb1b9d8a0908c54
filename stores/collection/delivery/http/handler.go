package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/delivery"
	"github.com/tonart/goindexer/base/validator"
	"github.com/tonart/goindexer/domain"
	dCollection "github.com/tonart/goindexer/domain/collection"
	"github.com/tonart/goindexer/middleware"
)

type handler struct {
	collection dCollection.Usecase
}

func New(e *echo.Echo, _collection dCollection.Usecase) {
	h := &handler{_collection}
	e.GET("/collections", h.getCollections, middleware.CacheHttp(10*time.Second))
	e.GET("/collections/:address", h.getCollection, middleware.CacheHttp(10*time.Second))
}

func (h *handler) getCollections(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	res, err := h.collection.GetAll(ctx)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) getCollection(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Address domain.Address `param:"address"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(string(p.Address)) {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	res, err := h.collection.GetByAddress(ctx, p.Address)
	if err == domain.ErrNotFound {
		return delivery.MakeJsonResp(_ctx, http.StatusNotFound, err)
	} else if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}
