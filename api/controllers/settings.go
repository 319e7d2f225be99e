package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/transport"
	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/scoring"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

type SettingsController struct {
	settings storage.SettingsStorage
	tokens   *transport.TokenIssuer
}

func NewSettingsController(settings storage.SettingsStorage, tokens *transport.TokenIssuer) *SettingsController {
	return &SettingsController{settings: settings, tokens: tokens}
}

func (c *SettingsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin/settings", c.tokens.RequireRole(models.RoleAdmin))

	group.GET("", c.get)
	group.PUT("/voting", c.setVoting)
	group.PUT("/score-weights", c.setScoreWeights)
	group.PUT("/event", c.setEvent)
}

// get godoc
// @Summary Get event settings
// @Tags settings
// @Security AdminToken
// @Produce json
// @Success 200 {object} models.SettingsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/settings [get]
func (c *SettingsController) get(g *gin.Context) {
	settings, err := c.settings.Read(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformSettingsFromStorage(settings))
}

// setVoting godoc
// @Summary Open or close audience voting
// @Tags settings
// @Security AdminToken
// @Accept json
// @Produce json
// @Param request body models.VotingToggleRequest true "Voting state"
// @Success 200 {object} models.SettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/admin/settings/voting [put]
func (c *SettingsController) setVoting(g *gin.Context) {
	var req models.VotingToggleRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	c.update(g, func(s *storage.Settings, now time.Time) {
		s.VotingOpen = *req.VotingOpen
		s.VotingStatusUpdatedAt = &now
		logging.Log.Infof("ADMIN: voting open set to %t", s.VotingOpen)
	})
}

// setScoreWeights godoc
// @Summary Set the judge/audience split
// @Description Both weights must be within 0..100 and total exactly 100.
// @Tags settings
// @Security AdminToken
// @Accept json
// @Produce json
// @Param request body models.ScoreWeightsRequest true "Weights"
// @Success 200 {object} models.SettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/admin/settings/score-weights [put]
func (c *SettingsController) setScoreWeights(g *gin.Context) {
	var req models.ScoreWeightsRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	weights := storage.ScoreWeights{Judges: *req.Judges, Audience: *req.Audience}
	if err := scoring.ValidateWeights(weights); err != nil {
		writeError(g, err)
		return
	}
	c.update(g, func(s *storage.Settings, now time.Time) {
		s.ScoreWeights = weights
		s.ScoreWeightsUpdatedAt = &now
		logging.Log.Infof("ADMIN: score weights set to judges=%g audience=%g", weights.Judges, weights.Audience)
	})
}

// setEvent godoc
// @Summary Set event name and description
// @Tags settings
// @Security AdminToken
// @Accept json
// @Produce json
// @Param request body models.EventInfoRequest true "Event"
// @Success 200 {object} models.SettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/admin/settings/event [put]
func (c *SettingsController) setEvent(g *gin.Context) {
	var req models.EventInfoRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	c.update(g, func(s *storage.Settings, _ time.Time) {
		s.EventName = req.EventName
		s.EventDescription = req.EventDescription
	})
}

func (c *SettingsController) update(g *gin.Context, apply func(*storage.Settings, time.Time)) {
	ctx := g.Request.Context()
	settings, err := c.settings.Read(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	now := time.Now().UTC()
	apply(settings, now)
	settings.UpdatedAt = &now
	if err := c.settings.Write(ctx, settings); err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformSettingsFromStorage(settings))
}
