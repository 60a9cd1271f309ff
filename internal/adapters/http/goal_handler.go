package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pacemaker/core/internal/application/services"
	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

// GoalHandler handles goal authoring, timeline reads, milestone completion
// and schedule adjustments
type GoalHandler struct {
	goalService       *services.GoalService
	adjustmentService *services.AdjustmentService
	timelineService   *services.TimelineService
	logger            *logger.Logger
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService *services.GoalService, adjustmentService *services.AdjustmentService, timelineService *services.TimelineService, logger *logger.Logger) *GoalHandler {
	return &GoalHandler{
		goalService:       goalService,
		adjustmentService: adjustmentService,
		timelineService:   timelineService,
		logger:            logger,
	}
}

// CreateGoal handles goal creation from the authoring form
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	claims := getClaimsFromContext(c)

	var req ports.CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.goalService.CreateGoal(c.Request().Context(), claims.UserID, req)
	if err != nil {
		h.logger.Errorw("Create goal failed", "error", err, "user_id", claims.UserID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, goal)
}

// GetCurrentGoal returns the caller's active goal
func (h *GoalHandler) GetCurrentGoal(c echo.Context) error {
	claims := getClaimsFromContext(c)

	goal, err := h.goalService.GetCurrentGoal(c.Request().Context(), claims.UserID)
	if err != nil {
		h.logger.Errorw("Get goal failed", "error", err, "user_id", claims.UserID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, goal)
}

// GetTimeline returns the display-order projection of the caller's goal
func (h *GoalHandler) GetTimeline(c echo.Context) error {
	claims := getClaimsFromContext(c)

	goal, err := h.goalService.GetCurrentGoal(c.Request().Context(), claims.UserID)
	if err != nil {
		h.logger.Errorw("Get timeline failed", "error", err, "user_id", claims.UserID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, h.timelineService.BuildTimeline(goal, time.Now()))
}

// CompleteMilestone marks a milestone done
func (h *GoalHandler) CompleteMilestone(c echo.Context) error {
	claims := getClaimsFromContext(c)
	milestoneID := c.Param("id")

	goal, err := h.goalService.CompleteMilestone(c.Request().Context(), claims.UserID, milestoneID)
	if err != nil {
		h.logger.Errorw("Complete milestone failed", "error", err, "user_id", claims.UserID, "milestone_id", milestoneID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, goal)
}

// Adjust applies an extend or squeeze to a milestone that is behind schedule
func (h *GoalHandler) Adjust(c echo.Context) error {
	claims := getClaimsFromContext(c)

	var req ports.AdjustRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.adjustmentService.Adjust(c.Request().Context(), claims.UserID, req)
	if err != nil {
		h.logger.Errorw("Adjustment failed", "error", err, "user_id", claims.UserID, "milestone_id", req.MilestoneID, "mode", req.Mode)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, goal)
}
