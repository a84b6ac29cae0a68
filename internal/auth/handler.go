package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/platform/httpx"
	"github.com/cfohub/cfohub/internal/shared"
)

// UserSource resolves the fixture user behind a principal.
type UserSource interface {
	Get(ctx context.Context, resource string, id int) (fixtures.Fixture, error)
}

// Handler serves the /auth endpoints of the mock API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	users    UserSource
	validate *validator.Validate
}

// NewHandler constructs the auth handler.
func NewHandler(logger *slog.Logger, service *Service, users UserSource) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, users: users, validate: form.NewValidator()}
}

// MountRoutes registers the auth endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Get("/auth/me", h.handleMe)
	r.Post("/auth/logout", h.handleLogout)
	r.Post("/auth/change-password", h.handleChangePassword)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || h.validate.Struct(req) != nil {
		h.invalidCredentials(w)
		return
	}
	token, err := h.service.Login(r.Context(), req.Email, req.Senha)
	if errors.Is(err, shared.ErrInvalidCredentials) {
		h.logger.Info("login rejected", slog.String("email", req.Email))
		h.invalidCredentials(w)
		return
	}
	if err != nil {
		h.logger.Error("login failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, token)
}

// handleMe returns the fixture user behind the token, or the administrator
// fixture when no token is sent.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	id := 1
	if raw := BearerToken(r); raw != "" {
		principal, err := h.service.Authenticate(r.Context(), raw)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		if n, err := strconv.Atoi(principal.UserID); err == nil {
			id = n
		}
	}
	user, err := h.users.Get(r.Context(), "users", id)
	if err != nil {
		h.logger.Error("load current user", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), BearerToken(r)); err != nil {
		h.logger.Warn("revoke token", slog.Any("error", err))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if verr := form.StructRule[ChangePasswordRequest](h.validate)(req); verr != nil {
		httpx.RespondError(w, verr)
		return
	}
	if err := h.service.ChangePassword(r.Context(), req.SenhaAtual, req.NovaSenha); err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			h.invalidCredentials(w)
			return
		}
		h.logger.Error("change password", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detailBody{Detail: "Password changed"})
}

func (h *Handler) invalidCredentials(w http.ResponseWriter) {
	httpx.JSON(w, http.StatusUnauthorized, detailBody{Detail: "Invalid credentials"})
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
