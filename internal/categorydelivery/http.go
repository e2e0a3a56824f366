// Package categorydelivery manages delivery layer of categories.
package categorydelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/nwtrack/networth/internal/domain"
	"github.com/nwtrack/networth/pkg/errorspkg"
	"github.com/nwtrack/networth/pkg/web"
)

// ValidKind validates the kind binding tag on category requests.
var ValidKind validator.Func = func(fl validator.FieldLevel) bool {
	if kind, ok := fl.Field().Interface().(string); ok {
		return domain.Kind(kind).Valid()
	}

	return false
}

// Service provides service layer interface needed by category delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package categorydelivery
type Service interface {
	Create(ctx context.Context, c domain.Category) (domain.Category, error)
	Get(ctx context.Context, key string) (domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// Handler facilitates category delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns category Handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type categoryData struct {
	Category domain.Category `json:"category"`
}

type createRequest struct {
	Key  string `json:"key" binding:"required"`
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required,kind"`
}

// Create handles http request to create a category.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	created, err := h.service.Create(ctx, domain.Category{
		Key:  req.Key,
		Name: req.Name,
		Kind: domain.Kind(req.Kind),
	})
	if err != nil {
		switch err {
		case domain.ErrCategoryAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: categoryData{created}})
}

type getRequest struct {
	Key string `uri:"key" binding:"required"`
}

// Get handles http request to get one category.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	category, err := h.service.Get(ctx, req.Key)
	if err != nil {
		switch err {
		case domain.ErrCategoryNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: categoryData{category}})
}

type listData struct {
	Categories []domain.Category `json:"categories"`
}

// List handles http request to list all categories.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	categories, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: listData{categories}})
}

func bindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}
