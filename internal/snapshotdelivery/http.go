// Package snapshotdelivery manages delivery layer of monthly snapshots
// and growth statistics.
package snapshotdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/nwtrack/networth/internal/domain"
	"github.com/nwtrack/networth/pkg/errorspkg"
	"github.com/nwtrack/networth/pkg/web"
)

// Service provides service layer interface needed by snapshot delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package snapshotdelivery
type Service interface {
	Snapshots(ctx context.Context) ([]domain.MonthlySnapshot, error)
	Growth(ctx context.Context, field domain.StatField, startDate *time.Time) (domain.GrowthResult, error)
}

// Handler facilitates snapshot delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns snapshot Handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type snapshotsData struct {
	Snapshots []domain.MonthlySnapshot `json:"snapshots"`
}

// List handles http request to get the full monthly snapshot sequence.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	snapshots, err := h.service.Snapshots(ctx)
	if err != nil {
		switch err {
		case domain.ErrSnapshotRebuild:
			gctx.JSON(http.StatusInternalServerError, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: snapshotsData{Snapshots: snapshots}})
}

type growthRequest struct {
	Field string `form:"field"`
	Start string `form:"start" binding:"omitempty,datetime=2006-01-02"`
}

type growthData struct {
	Growth domain.GrowthResult `json:"growth"`
}

// Growth handles http request to compute growth of a snapshot statistic.
// Without a field parameter net worth growth is reported, without a start
// parameter growth covers the whole history.
func (h *Handler) Growth(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req growthRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	field := domain.StatNetWorth
	if req.Field != "" {
		parsed, err := domain.ParseStatField(req.Field)
		if err != nil {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		field = parsed
	}

	var startDate *time.Time
	if req.Start != "" {
		parsed, err := time.Parse(domain.DateLayout, req.Start)
		if err != nil {
			gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidDate))
			return
		}

		startDate = &parsed
	}

	result, err := h.service.Growth(ctx, field, startDate)
	if err != nil {
		switch err {
		case domain.ErrUnknownStatField:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case domain.ErrSnapshotRebuild:
			gctx.JSON(http.StatusInternalServerError, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: growthData{Growth: result}})
}

func bindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}
