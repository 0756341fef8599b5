package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quillcms/quill/internal/auth"
	"github.com/quillcms/quill/internal/collection"
	"github.com/quillcms/quill/internal/mail"
	"github.com/quillcms/quill/internal/queue"
)

func (h *Handler) reqContext(g *gin.Context) collection.RequestContext {
	return collection.RequestContext{
		Locale:    g.GetString(localeKey),
		RequestID: g.GetString(requestIDKey),
		RemoteIP:  g.ClientIP(),
	}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Log in to an auth collection
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "credentials"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/{collection}/login [post]
func (h *Handler) Login(c *collection.Collection) gin.HandlerFunc {
	return func(g *gin.Context) {
		var in loginReq
		if err := g.ShouldBindJSON(&in); err != nil {
			g.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		tok, u, err := h.Auth.Login(g.Request.Context(), c, in.Email, in.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			g.JSON(http.StatusUnauthorized, gin.H{
				"error": h.Tr.T(g.GetString(localeKey), "error:invalidCredentials"),
			})
			return
		}
		if err != nil {
			h.Log.Error("login failed", zap.Error(err))
			g.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
			return
		}

		go h.Events.Publish(g.Request.Context(), h.Cfg.EventExchange, queue.KeyUserLoggedIn,
			queue.UserLoggedIn{UserID: u.ID, Email: u.Email, Collection: c.Slug},
			g.GetString(requestIDKey))

		g.JSON(http.StatusOK, gin.H{
			"token": tok,
			"user":  gin.H{"id": u.ID.Hex(), "email": u.Email, "name": u.Name},
		})
	}
}

type forgotPasswordReq struct {
	// Email is a pointer so a missing key can be rejected before the
	// operation runs.
	Email        *string    `json:"email"`
	DisableEmail bool       `json:"disableEmail"`
	Expiration   *time.Time `json:"expiration"`
}

// ForgotPassword godoc
// @Summary Request a password reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body forgotPasswordReq true "email"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/{collection}/forgot-password [post]
func (h *Handler) ForgotPassword(c *collection.Collection) gin.HandlerFunc {
	return func(g *gin.Context) {
		locale := g.GetString(localeKey)

		var in forgotPasswordReq
		if err := g.ShouldBindJSON(&in); err != nil {
			g.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if in.Email == nil {
			g.JSON(http.StatusBadRequest, gin.H{"error": h.Tr.T(locale, "error:emailIsRequired")})
			return
		}

		args := collection.ForgotPasswordArgs{
			Collection:   c,
			Data:         collection.ForgotPasswordData{Email: *in.Email},
			DisableEmail: in.DisableEmail,
			Req:          h.reqContext(g),
		}
		if in.Expiration != nil {
			args.Expiration = *in.Expiration
		}

		ctx := mail.WithRequestID(g.Request.Context(), args.Req.RequestID)
		token, err := h.Auth.ForgotPassword(ctx, args)
		if errors.Is(err, auth.ErrMissingEmail) {
			g.JSON(http.StatusBadRequest, gin.H{"error": h.Tr.T(locale, "error:emailIsRequired")})
			return
		}
		if err != nil {
			h.Log.Error("forgot password failed",
				zap.String("collection", c.Slug), zap.Error(err))
			g.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
			return
		}

		// An unknown email returns the same success shape with a null token,
		// so the endpoint does not disclose which addresses exist.
		if token == "" {
			g.JSON(http.StatusOK, gin.H{"token": nil})
			return
		}
		g.JSON(http.StatusOK, gin.H{"token": token})
	}
}

type resetPasswordReq struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword godoc
// @Summary Consume a reset token and set a new password
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body resetPasswordReq true "token and new password"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/{collection}/reset-password [post]
func (h *Handler) ResetPassword(c *collection.Collection) gin.HandlerFunc {
	return func(g *gin.Context) {
		locale := g.GetString(localeKey)

		var in resetPasswordReq
		if err := g.ShouldBindJSON(&in); err != nil {
			g.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		u, err := h.Auth.ResetPassword(g.Request.Context(), c, in.Token, in.Password)
		switch {
		case errors.Is(err, auth.ErrWeakPassword):
			g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, auth.ErrInvalidToken):
			g.JSON(http.StatusUnauthorized, gin.H{
				"error": h.Tr.T(locale, "error:tokenInvalidOrExpired"),
			})
			return
		case err != nil:
			h.Log.Error("reset password failed",
				zap.String("collection", c.Slug), zap.Error(err))
			g.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
			return
		}

		g.JSON(http.StatusOK, gin.H{
			"message": h.Tr.T(locale, "general:success"),
			"user":    gin.H{"id": u.ID.Hex(), "email": u.Email},
		})
	}
}

// Me godoc
// @Summary Current authenticated user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/{collection}/me [get]
func (h *Handler) Me(c *collection.Collection) gin.HandlerFunc {
	return func(g *gin.Context) {
		au, _ := g.Get(authUserKey)
		userCtx := au.(AuthUser)

		u, err := h.Auth.User(g.Request.Context(), c, userCtx.Email)
		if err != nil || u == nil {
			g.JSON(http.StatusNotFound, gin.H{
				"error": h.Tr.T(g.GetString(localeKey), "error:notFound"),
			})
			return
		}
		g.JSON(http.StatusOK, gin.H{
			"id": u.ID.Hex(), "email": u.Email, "name": u.Name, "created_at": u.CreatedAt,
		})
	}
}
