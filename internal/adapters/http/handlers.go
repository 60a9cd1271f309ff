package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pacemaker/core/internal/application/services"
	"github.com/pacemaker/core/internal/domain/entities"
	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

// AuthHandler handles the magic-link login flow
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RequestLink handles magic-link requests. It always answers 200 so the
// endpoint cannot be used to probe which emails exist.
func (h *AuthHandler) RequestLink(c echo.Context) error {
	var req ports.RequestLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.RequestLink(c.Request().Context(), req); err != nil {
		h.logger.Errorw("Request link failed", "error", err, "email", req.Email)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "If the address exists, a sign-in link has been sent"})
}

// VerifyToken exchanges a magic-link token for a session
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	var req ports.VerifyTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.VerifyToken(c.Request().Context(), req)
	if err != nil {
		h.logger.Warnw("Token verification failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired sign-in link")
	}

	return c.JSON(http.StatusOK, response)
}

// ProfileHandler handles profile setup, reads and edits
type ProfileHandler struct {
	profileService *services.ProfileService
	logger         *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// SetupProfile handles the one-time setup questionnaire
func (h *ProfileHandler) SetupProfile(c echo.Context) error {
	claims := getClaimsFromContext(c)

	var req ports.SetupProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileService.SetupProfile(c.Request().Context(), claims.UserID, claims.Email, req)
	if err != nil {
		h.logger.Errorw("Profile setup failed", "error", err, "user_id", claims.UserID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, profile)
}

// GetProfile returns the caller's profile, running the daily streak check
// first so the returned streak is already up to date for today.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	claims := getClaimsFromContext(c)

	profile, err := h.profileService.TrackLogin(c.Request().Context(), claims.UserID, time.Now())
	if err != nil {
		h.logger.Errorw("Get profile failed", "error", err, "user_id", claims.UserID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies partial profile edits
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	claims := getClaimsFromContext(c)

	var req ports.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileService.UpdateProfile(c.Request().Context(), claims.UserID, req)
	if err != nil {
		h.logger.Errorw("Profile update failed", "error", err, "user_id", claims.UserID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

// NotificationHandler handles outbound progress update emails
type NotificationHandler struct {
	notificationService *services.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// SendProgressUpdate mails the caller a progress summary of their goal
func (h *NotificationHandler) SendProgressUpdate(c echo.Context) error {
	claims := getClaimsFromContext(c)

	var req ports.SendUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.notificationService.SendProgressUpdate(c.Request().Context(), claims.UserID, req); err != nil {
		h.logger.Errorw("Progress update failed", "error", err, "user_id", claims.UserID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Progress update sent"})
}

// Utility functions

func getClaimsFromContext(c echo.Context) *ports.Claims {
	if claims, ok := c.Get("claims").(*ports.Claims); ok {
		return claims
	}
	return &ports.Claims{}
}

// mapDomainError converts sentinel domain errors to HTTP status codes.
// Anything unrecognized becomes a 500 with a generic message.
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, entities.ErrGoalNotFound),
		errors.Is(err, entities.ErrMilestoneNotFound),
		errors.Is(err, entities.ErrProfileNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrValidation),
		errors.Is(err, entities.ErrInvalidDateRange):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrMilestoneCompleted),
		errors.Is(err, entities.ErrMilestoneNotLate):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrLoginTokenInvalid):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
