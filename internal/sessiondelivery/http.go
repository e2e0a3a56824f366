// Package sessiondelivery manages delivery layer of login sessions.
package sessiondelivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/nwtrack/networth/pkg/configpkg"
	"github.com/nwtrack/networth/pkg/errorspkg"
	"github.com/nwtrack/networth/pkg/passpkg"
	"github.com/nwtrack/networth/pkg/tokenpkg"
	"github.com/nwtrack/networth/pkg/web"
)

// ErrInvalidCredentials is returned when the username or password does not
// match the configured user.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Handler authenticates the configured user and issues access tokens.
type Handler struct {
	config     configpkg.Config
	tokenMaker tokenpkg.Maker
}

// NewHandler returns session Handler.
func NewHandler(config configpkg.Config, tm tokenpkg.Maker) Handler {
	return Handler{
		config:     config,
		tokenMaker: tm,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles http login request and returns an access token.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			field := ve[0]
			gctx.JSON(http.StatusBadRequest, web.Response{Error: field.Field() + web.GetErrorMsg(field)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if req.Username != h.config.AuthUsername {
		gctx.JSON(http.StatusUnauthorized, web.Error(ErrInvalidCredentials))
		return
	}

	if err := passpkg.Check(req.Password, h.config.AuthPasswordHash); err != nil {
		gctx.JSON(http.StatusUnauthorized, web.Error(ErrInvalidCredentials))
		return
	}

	accessToken, payload, err := h.tokenMaker.CreateToken(req.Username, h.config.AccessTokenDuration)
	if err != nil {
		l.Warn().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: payload.ExpiredAt,
	}

	gctx.JSON(http.StatusOK, res)
}
