package controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/transport"
	"github.com/tharindraj/ctrl-alt-rock-voting/scoring"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

// JudgeController serves score submission, finalization and judge-facing views.
type JudgeController struct {
	engine      *scoring.JudgeEngine
	judges      storage.JudgeStorage
	categories  storage.CategoryStorage
	contestants storage.ContestantStorage
	scores      storage.ScoreStorage
	tokens      *transport.TokenIssuer
	metrics     *transport.Metrics
}

func NewJudgeController(engine *scoring.JudgeEngine, judges storage.JudgeStorage, categories storage.CategoryStorage, contestants storage.ContestantStorage, scores storage.ScoreStorage, tokens *transport.TokenIssuer, metrics *transport.Metrics) *JudgeController {
	return &JudgeController{
		engine:      engine,
		judges:      judges,
		categories:  categories,
		contestants: contestants,
		scores:      scores,
		tokens:      tokens,
		metrics:     metrics,
	}
}

func (c *JudgeController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/judge", c.tokens.RequireRole(models.RoleJudge))

	group.POST("/contestants/:id/score", c.submitScore)
	group.GET("/contestants/:id/other-scores", c.otherScores)
	group.POST("/categories/:id/finalize", c.finalize)
	group.GET("/categories/:id/my-scores", c.categoryScores)
	group.GET("/categories/:id/results", c.panelResults)
	group.GET("/my-scores", c.myScores)
	group.GET("/completion-status", c.completionStatus)
}

func (c *JudgeController) record(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	c.metrics.RecordJudgeOperation(operation, outcome)
}

// submitScore godoc
// @Summary Submit criteria scores for a contestant
// @Description Re-submitting overwrites the previous score until the category is finalized.
// @Tags judge
// @Security BearerToken
// @Accept json
// @Produce json
// @Param id path string true "Contestant ID"
// @Param request body models.SubmitScoreRequest true "Scores"
// @Success 200 {object} models.SubmitScoreResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse "Score already finalized"
// @Failure 404 {object} models.ErrorResponse
// @Router /api/judge/contestants/{id}/score [post]
func (c *JudgeController) submitScore(g *gin.Context) {
	var req models.SubmitScoreRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}

	score, err := c.engine.Submit(g.Request.Context(), scoring.ScoreSubmission{
		ContestantID:   g.Param("id"),
		JudgeID:        transport.IdentityFrom(g).ID,
		CriteriaScores: req.CriteriaScores,
		Comments:       req.Comments,
	})
	c.record("submit", err)
	if err != nil {
		writeError(g, err)
		return
	}

	g.JSON(http.StatusOK, models.SubmitScoreResponse{
		Message:          "score submitted",
		TotalScore:       score.TotalScore,
		MaxPossibleScore: score.MaxPossibleScore,
	})
}

// finalize godoc
// @Summary Lock all of this judge's scores in a category
// @Tags judge
// @Security BearerToken
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.FinalizeResponse
// @Failure 400 {object} models.ErrorResponse "Lists contestants without a score"
// @Failure 404 {object} models.ErrorResponse
// @Router /api/judge/categories/{id}/finalize [post]
func (c *JudgeController) finalize(g *gin.Context) {
	count, err := c.engine.Finalize(g.Request.Context(), transport.IdentityFrom(g).ID, g.Param("id"))
	c.record("finalize", err)
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.FinalizeResponse{Message: "scores finalized", FinalizedCount: count})
}

// categoryScores godoc
// @Summary This judge's scores in a category
// @Tags judge
// @Security BearerToken
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.CategoryScoresResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/judge/categories/{id}/my-scores [get]
func (c *JudgeController) categoryScores(g *gin.Context) {
	categoryID := g.Param("id")
	scores, contestants, finalized, err := c.engine.CategoryScores(g.Request.Context(), transport.IdentityFrom(g).ID, categoryID)
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.CategoryScoresResponse{
		CategoryID:  categoryID,
		Scores:      scores,
		Contestants: contestantResponses(contestants),
		IsFinalized: finalized,
	})
}

// panelResults godoc
// @Summary Judges' top three of a category
// @Description Empty until every judge has finalized every contestant of the category.
// @Tags judge
// @Security BearerToken
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} scoring.PanelResult
// @Failure 404 {object} models.ErrorResponse
// @Router /api/judge/categories/{id}/results [get]
func (c *JudgeController) panelResults(g *gin.Context) {
	ctx := g.Request.Context()
	categoryID := g.Param("id")

	category, err := c.categories.Get(ctx, categoryID)
	if err != nil {
		writeError(g, err)
		return
	}
	if category == nil {
		writeError(g, &scoring.NotFoundError{Entity: "category", ID: categoryID})
		return
	}
	contestants, err := c.contestants.GetByCategory(ctx, categoryID)
	if err != nil {
		writeError(g, err)
		return
	}
	judges, err := c.judges.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	doc, err := c.scores.Read(ctx)
	if err != nil {
		writeError(g, err)
		return
	}

	judgeIDs := make([]string, 0, len(judges))
	for _, j := range judges {
		judgeIDs = append(judgeIDs, j.ID)
	}
	g.JSON(http.StatusOK, scoring.JudgePanel(categoryID, contestants, judgeIDs, doc))
}

// myScores godoc
// @Summary Every score of this judge, newest first
// @Tags judge
// @Security BearerToken
// @Produce json
// @Success 200 {array} models.MyScoreEntry
// @Failure 500 {object} models.ErrorResponse
// @Router /api/judge/my-scores [get]
func (c *JudgeController) myScores(g *gin.Context) {
	ctx := g.Request.Context()
	judgeID := transport.IdentityFrom(g).ID

	doc, err := c.scores.Read(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	contestants, err := c.contestants.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	categories, err := c.categories.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	categoryNames := make(map[string]string, len(categories))
	for _, cat := range categories {
		categoryNames[cat.ID] = cat.Name
	}

	entries := make([]models.MyScoreEntry, 0)
	for _, contestant := range contestants {
		score := doc.Score(contestant.ID, judgeID)
		if score == nil {
			continue
		}
		entries = append(entries, models.MyScoreEntry{
			ContestantID:   contestant.ID,
			ContestantName: contestant.Name,
			CategoryID:     contestant.CategoryID,
			CategoryName:   categoryNames[contestant.CategoryID],
			CriteriaScores: score.CriteriaScores,
			Comments:       score.Comments,
			TotalScore:     score.TotalScore,
			MaxScore:       score.MaxPossibleScore,
			SubmittedAt:    score.SubmittedAt,
			Finalized:      score.Finalized,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SubmittedAt.After(entries[j].SubmittedAt)
	})
	g.JSON(http.StatusOK, entries)
}

// otherScores godoc
// @Summary Finalized scores of the other judges for a contestant
// @Tags judge
// @Security BearerToken
// @Produce json
// @Param id path string true "Contestant ID"
// @Success 200 {object} models.OtherScoresResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/judge/contestants/{id}/other-scores [get]
func (c *JudgeController) otherScores(g *gin.Context) {
	ctx := g.Request.Context()
	contestantID := g.Param("id")
	judgeID := transport.IdentityFrom(g).ID

	contestant, err := c.contestants.Get(ctx, contestantID)
	if err != nil {
		writeError(g, err)
		return
	}
	if contestant == nil {
		writeError(g, &scoring.NotFoundError{Entity: "contestant", ID: contestantID})
		return
	}
	doc, err := c.scores.Read(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	judges, err := c.judges.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	judgeNames := make(map[string]string, len(judges))
	for _, j := range judges {
		judgeNames[j.ID] = j.Name
	}

	entries := make([]models.OtherScoreEntry, 0)
	for otherID, score := range doc.JudgeScores[contestantID] {
		if otherID == judgeID || score == nil || !score.Finalized {
			continue
		}
		entries = append(entries, models.OtherScoreEntry{
			JudgeID:        otherID,
			JudgeName:      judgeNames[otherID],
			CriteriaScores: score.CriteriaScores,
			Comments:       score.Comments,
			TotalScore:     score.TotalScore,
			FinalizedAt:    score.FinalizedAt,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].JudgeID < entries[j].JudgeID })
	g.JSON(http.StatusOK, models.OtherScoresResponse{ContestantID: contestantID, Scores: entries})
}

// completionStatus godoc
// @Summary Scoring progress of every judge per category
// @Tags judge
// @Security BearerToken
// @Produce json
// @Success 200 {array} models.JudgeCompletion
// @Failure 500 {object} models.ErrorResponse
// @Router /api/judge/completion-status [get]
func (c *JudgeController) completionStatus(g *gin.Context) {
	ctx := g.Request.Context()

	judges, err := c.judges.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	categories, err := c.categories.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	contestants, err := c.contestants.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	doc, err := c.scores.Read(ctx)
	if err != nil {
		writeError(g, err)
		return
	}

	status := make([]models.JudgeCompletion, 0, len(judges))
	for _, judge := range judges {
		entry := models.JudgeCompletion{JudgeID: judge.ID, JudgeName: judge.Name, Categories: make([]models.CategoryCompletion, 0, len(categories))}
		for _, category := range categories {
			entry.Categories = append(entry.Categories, categoryCompletion(judge.ID, category, storage.FilterByCategory(contestants, category.ID), doc))
		}
		status = append(status, entry)
	}
	g.JSON(http.StatusOK, status)
}

func categoryCompletion(judgeID string, category *storage.Category, contestants []*storage.Contestant, doc *storage.ScoresDocument) models.CategoryCompletion {
	cc := models.CategoryCompletion{CategoryID: category.ID, CategoryName: category.Name, Total: len(contestants)}
	finalized := len(contestants) > 0
	for _, contestant := range contestants {
		score := doc.Score(contestant.ID, judgeID)
		if score == nil {
			finalized = false
			continue
		}
		cc.Scored++
		finalized = finalized && score.Finalized
	}
	if cc.Total > 0 {
		cc.Percentage = float64(cc.Scored) / float64(cc.Total) * 100
	}
	cc.Finalized = finalized
	return cc
}
