package authapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmsforum/forum/internal/core/domain"
	"github.com/dmsforum/forum/internal/core/ports"
)

type Handler struct {
	authService ports.AuthService
}

func NewHandler(authService ports.AuthService) *Handler {
	return &Handler{authService: authService}
}

type registerRequest struct {
	Username string   `json:"username" validate:"required,max=64"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles"    validate:"dive,oneof=ADMINISTRATION DISCUSSION MODERATION"`
}

type verifyResponse struct {
	Username string `json:"username"`
}

// Login exchanges HTTP Basic credentials for a bearer token, returned as
// plain text.
func (h *Handler) Login(c echo.Context) error {
	username, password, ok := c.Request().BasicAuth()
	if !ok {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="forum"`)
		return echo.NewHTTPError(http.StatusUnauthorized, "missing basic credentials")
	}

	token, _, err := h.authService.Login(c.Request().Context(), username, password)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, token)
}

// Verify answers 200 with the token's username. The bearer middleware has
// already rejected invalid tokens.
func (h *Handler) Verify(c echo.Context) error {
	return c.JSON(http.StatusOK, verifyResponse{Username: ctxUsername(c)})
}

// UserRole answers 200 with the user's roles when the user holds rolename,
// and 404 otherwise.
func (h *Handler) UserRole(c echo.Context) error {
	role, ok := domain.ParseRole(c.Param("rolename"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown role")
	}

	roles, err := h.authService.UserRole(c.Request().Context(), c.Param("username"), role)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "role not granted")
		}
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Register creates a user account. Only administrators reach it.
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	roles := make([]domain.Role, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, domain.Role(r))
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, roles)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
		}
		return err
	}
	return c.JSON(http.StatusCreated, user)
}
