package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/transport"
	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/scoring"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

var csvHeader = []string{"Category", "Contestant", "Judge Score", "Audience Votes", "Final Score", "Winner"}

// ResultsController is the admin side of results: breakdown, export, winner
// declaration, publication and reset.
type ResultsController struct {
	aggregator *scoring.Aggregator
	publisher  *scoring.Publisher
	judges     storage.JudgeStorage
	audience   storage.AudienceStorage
	tokens     *transport.TokenIssuer
}

func NewResultsController(aggregator *scoring.Aggregator, publisher *scoring.Publisher, judges storage.JudgeStorage, audience storage.AudienceStorage, tokens *transport.TokenIssuer) *ResultsController {
	return &ResultsController{
		aggregator: aggregator,
		publisher:  publisher,
		judges:     judges,
		audience:   audience,
		tokens:     tokens,
	}
}

func (c *ResultsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin/results", c.tokens.RequireRole(models.RoleAdmin))

	group.GET("", c.getResults)
	group.GET("/export", c.export)
	group.POST("/declare-winner", c.declareWinner)
	group.POST("/publish/:categoryId", c.publish)
	group.POST("/unpublish", c.unpublish)
	group.POST("/clear-votes", c.clearVotes)
}

// getResults godoc
// @Summary Full ranked breakdown per category
// @Description Counts every stored judge score, finalized or not.
// @Tags results
// @Security AdminToken
// @Produce json
// @Param categoryId query string false "Restrict to one category"
// @Success 200 {object} models.AdminResultsResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/results [get]
func (c *ResultsController) getResults(g *gin.Context) {
	ctx := g.Request.Context()
	results, snap, err := c.aggregator.Compute(ctx, g.Query("categoryId"))
	if err != nil {
		writeError(g, err)
		return
	}
	judges, err := c.judges.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}

	active := make(map[string]bool)
	for _, id := range scoring.ActiveJudges(snap.Scores) {
		active[id] = true
	}
	statuses := make([]models.JudgeStatus, 0, len(judges))
	for _, j := range judges {
		statuses = append(statuses, models.JudgeStatus{ID: j.ID, Name: j.Name, HasScored: active[j.ID]})
	}

	g.JSON(http.StatusOK, models.AdminResultsResponse{
		Results:      results,
		Published:    snap.Settings.Results.Published,
		Winners:      snap.Settings.Results.Winners,
		ScoreWeights: snap.Settings.ScoreWeights,
		Judges:       statuses,
		TotalVoters:  scoring.DistinctVoters(snap.Scores),
	})
}

// export godoc
// @Summary Export results as JSON or CSV
// @Tags results
// @Security AdminToken
// @Produce json
// @Produce text/csv
// @Param format query string false "json (default) or csv"
// @Success 200 {object} models.ExportResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/results/export [get]
func (c *ResultsController) export(g *gin.Context) {
	format := models.ExportFormat(g.DefaultQuery("format", string(models.ExportJSON)))
	if format != models.ExportJSON && format != models.ExportCSV {
		writeError(g, scoring.NewValidationError("unsupported export format %q", format))
		return
	}

	ctx := g.Request.Context()
	results, snap, err := c.aggregator.Compute(ctx, "")
	if err != nil {
		writeError(g, err)
		return
	}
	now := time.Now().UTC()

	if format == models.ExportCSV {
		g.Header("Content-Disposition", fmt.Sprintf("attachment; filename=results-%s.csv", now.Format("20060102-150405")))
		g.Header("Content-Type", "text/csv")
		g.Status(http.StatusOK)
		if err := writeResultsCSV(g.Writer, results, snap.Settings.Results.Winners); err != nil {
			logging.Log.Errorf("RESULTS: failed to write csv export: %v", err)
		}
		return
	}

	judges, err := c.judges.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	audience, err := c.audience.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}

	resp := models.ExportResponse{
		ExportedAt:    now,
		Settings:      models.TransformSettingsFromStorage(snap.Settings),
		Categories:    make([]models.CategoryResponse, 0, len(snap.Categories)),
		Contestants:   contestantResponses(snap.Contestants),
		Judges:        make([]models.JudgeResponse, 0, len(judges)),
		AudienceCount: len(audience),
		Results:       results,
		Scores:        snap.Scores,
	}
	for _, cat := range snap.Categories {
		resp.Categories = append(resp.Categories, models.TransformCategoryFromStorage(cat))
	}
	for _, j := range judges {
		resp.Judges = append(resp.Judges, models.TransformJudgeFromStorage(j))
	}
	logging.Log.Infof("RESULTS: exported %d categories", len(results))
	g.JSON(http.StatusOK, resp)
}

func writeResultsCSV(w io.Writer, results []scoring.CategoryResult, winners map[string]*storage.WinnerEntry) error {
	out := csv.NewWriter(w)
	if err := out.Write(csvHeader); err != nil {
		return err
	}
	for _, category := range results {
		entry := winners[category.Category.ID]
		for _, r := range category.Results {
			row := []string{
				category.Category.Name,
				r.Contestant.Name,
				strconv.FormatFloat(r.JudgeScore, 'f', 2, 64),
				strconv.Itoa(r.AudienceVotes),
				strconv.FormatFloat(r.FinalScore, 'f', 2, 64),
				placeOf(entry, r.Contestant.ID),
			}
			if err := out.Write(row); err != nil {
				return err
			}
		}
	}
	out.Flush()
	return out.Error()
}

func placeOf(entry *storage.WinnerEntry, contestantID string) string {
	if entry == nil {
		return ""
	}
	switch contestantID {
	case entry.First:
		return "1st"
	case entry.Second:
		return "2nd"
	case entry.Third:
		return "3rd"
	}
	return ""
}

// declareWinner godoc
// @Summary Declare the podium of a category
// @Description Stored as given and shown to the audience instead of the computed ranking once published.
// @Tags results
// @Security AdminToken
// @Accept json
// @Produce json
// @Param request body models.DeclareWinnersRequest true "Winners"
// @Success 200 {object} models.WinnerResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/results/declare-winner [post]
func (c *ResultsController) declareWinner(g *gin.Context) {
	var req models.DeclareWinnersRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	entry, err := c.publisher.Declare(g.Request.Context(), req.CategoryID, req.Placement())
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.WinnerResponse{Message: "winners declared", CategoryID: req.CategoryID, Winners: entry})
}

// publish godoc
// @Summary Publish results for a category
// @Description Optional places in the body replace declared ones.
// @Tags results
// @Security AdminToken
// @Accept json
// @Produce json
// @Param categoryId path string true "Category ID"
// @Param request body models.PublishRequest false "Winners"
// @Success 200 {object} models.WinnerResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/results/publish/{categoryId} [post]
func (c *ResultsController) publish(g *gin.Context) {
	var places *scoring.Placement
	var req models.PublishRequest
	if err := g.ShouldBindJSON(&req); err == nil {
		places = req.Placement()
	} else if !errors.Is(err, io.EOF) {
		writeBindError(g, err)
		return
	}

	categoryID := g.Param("categoryId")
	entry, err := c.publisher.Publish(g.Request.Context(), categoryID, places)
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.WinnerResponse{Message: "results published", CategoryID: categoryID, Winners: entry})
}

// unpublish godoc
// @Summary Hide results from the audience
// @Tags results
// @Security AdminToken
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/results/unpublish [post]
func (c *ResultsController) unpublish(g *gin.Context) {
	if err := c.publisher.Unpublish(g.Request.Context()); err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.MessageResponse{Message: "results unpublished"})
}

// clearVotes godoc
// @Summary Delete every judge score and audience vote
// @Description Also clears declared winners and unpublishes results.
// @Tags results
// @Security AdminToken
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/results/clear-votes [post]
func (c *ResultsController) clearVotes(g *gin.Context) {
	if err := c.publisher.ClearVotes(g.Request.Context()); err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.MessageResponse{Message: "all votes and scores cleared"})
}
