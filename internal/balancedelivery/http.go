// Package balancedelivery manages delivery layer of balance entries.
package balancedelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nwtrack/networth/internal/domain"
	"github.com/nwtrack/networth/pkg/errorspkg"
	"github.com/nwtrack/networth/pkg/web"
)

// Service provides service layer interface needed by balance delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package balancedelivery
type Service interface {
	Set(ctx context.Context, accountID int32, date time.Time, value decimal.Decimal) (domain.BalanceEntry, error)
	List(ctx context.Context, accountID int32) ([]domain.BalanceEntry, error)
	Delete(ctx context.Context, accountID int32, date time.Time) error
}

// Handler facilitates balance delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns balance Handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type accountURI struct {
	AccountID int32 `uri:"id" binding:"required,min=1"`
}

type entryData struct {
	Entry domain.BalanceEntry `json:"entry"`
}

type setRequest struct {
	Date  string `json:"date" binding:"required,datetime=2006-01-02"`
	Value string `json:"value" binding:"required"`
}

// Set handles http request to record or overwrite a balance observation.
func (h *Handler) Set(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	var req setRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	date, err := time.Parse(domain.DateLayout, req.Date)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidDate))
		return
	}

	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: "value must be a decimal number"})
		return
	}

	entry, err := h.service.Set(ctx, uri.AccountID, date, value)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrSnapshotRebuild:
			gctx.JSON(http.StatusInternalServerError, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: entryData{entry}})
}

type listData struct {
	Entries []domain.BalanceEntry `json:"entries"`
}

// List handles http request to list an account's balance history. An
// unparsable account id is answered with an empty history instead of an
// error so the reading side stays usable.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Msg("listing balances for malformed account id")
		gctx.JSON(http.StatusOK, web.Response{Data: listData{Entries: []domain.BalanceEntry{}}})

		return
	}

	entries, err := h.service.List(ctx, uri.AccountID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: listData{Entries: entries}})
}

type deleteRequest struct {
	Date string `uri:"date" binding:"required"`
}

// Delete handles http request to remove a single balance observation.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	var req deleteRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	date, err := time.Parse(domain.DateLayout, req.Date)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidDate))
		return
	}

	if err := h.service.Delete(ctx, uri.AccountID, date); err != nil {
		switch err {
		case domain.ErrBalanceNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrSnapshotRebuild:
			gctx.JSON(http.StatusInternalServerError, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{})
}

func bindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}
