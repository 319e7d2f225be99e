package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/transport"
	"github.com/tharindraj/ctrl-alt-rock-voting/scoring"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

// VotingController serves the audience: votes, vote status and published results.
type VotingController struct {
	recorder    *scoring.VoteRecorder
	publisher   *scoring.Publisher
	categories  storage.CategoryStorage
	contestants storage.ContestantStorage
	scores      storage.ScoreStorage
	tokens      *transport.TokenIssuer
	metrics     *transport.Metrics
}

func NewVotingController(recorder *scoring.VoteRecorder, publisher *scoring.Publisher, categories storage.CategoryStorage, contestants storage.ContestantStorage, scores storage.ScoreStorage, tokens *transport.TokenIssuer, metrics *transport.Metrics) *VotingController {
	return &VotingController{
		recorder:    recorder,
		publisher:   publisher,
		categories:  categories,
		contestants: contestants,
		scores:      scores,
		tokens:      tokens,
		metrics:     metrics,
	}
}

func (c *VotingController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/audience", c.tokens.RequireRole(models.RoleAudience))

	group.POST("/contestants/:id/vote", c.registerVote)
	group.GET("/contestants/:id/can-vote", c.canVote)
	group.GET("/voting-status", c.votingStatus)
	group.GET("/my-votes", c.myVotes)
	group.GET("/categories/:id/stats", c.categoryStats)
	group.GET("/results", c.publishedResults)
}

// registerVote godoc
// @Summary Vote for a contestant
// @Description One vote per contestant per audience member; any number of contestants.
// @Tags audience
// @Security BearerToken
// @Produce json
// @Param id path string true "Contestant ID"
// @Success 200 {object} models.VoteResponse
// @Failure 400 {object} models.ErrorResponse "Already voted for this contestant"
// @Failure 403 {object} models.ErrorResponse "Voting closed"
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/audience/contestants/{id}/vote [post]
func (c *VotingController) registerVote(g *gin.Context) {
	res, err := c.recorder.Record(g.Request.Context(), transport.IdentityFrom(g).ID, g.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, scoring.ErrDuplicateVote):
			c.metrics.RecordVote("duplicate")
		case errors.Is(err, scoring.ErrVotingClosed):
			c.metrics.RecordVote("closed")
		default:
			c.metrics.RecordVote("error")
		}
		writeError(g, err)
		return
	}

	c.metrics.RecordVote("accepted")
	g.JSON(http.StatusOK, models.VoteResponse{Message: "vote recorded for " + res.Contestant.Name, TotalVotes: res.TotalVotes})
}

// canVote godoc
// @Summary Whether a vote for the contestant would be accepted
// @Tags audience
// @Security BearerToken
// @Produce json
// @Param id path string true "Contestant ID"
// @Success 200 {object} models.CanVoteResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/audience/contestants/{id}/can-vote [get]
func (c *VotingController) canVote(g *gin.Context) {
	ok, reason, err := c.recorder.CanVote(g.Request.Context(), transport.IdentityFrom(g).ID, g.Param("id"))
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.CanVoteResponse{CanVote: ok, Reason: reason})
}

// votingStatus godoc
// @Summary Whether voting is open
// @Tags audience
// @Security BearerToken
// @Produce json
// @Success 200 {object} models.VotingStatusResponse
// @Router /api/audience/voting-status [get]
func (c *VotingController) votingStatus(g *gin.Context) {
	open, err := c.recorder.VotingOpen(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}
	message := "Voting is currently closed"
	if open {
		message = "Voting is open"
	}
	g.JSON(http.StatusOK, models.VotingStatusResponse{VotingOpen: open, Message: message})
}

// myVotes godoc
// @Summary Contestants this audience member voted for
// @Tags audience
// @Security BearerToken
// @Produce json
// @Success 200 {object} models.MyVotesResponse
// @Router /api/audience/my-votes [get]
func (c *VotingController) myVotes(g *gin.Context) {
	votes, err := c.recorder.VotesOf(g.Request.Context(), transport.IdentityFrom(g).ID)
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.MyVotesResponse{VotedContestants: votes, TotalVotes: len(votes)})
}

// categoryStats godoc
// @Summary Live vote counts of a category while voting is open
// @Tags audience
// @Security BearerToken
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.CategoryStatsResponse
// @Failure 403 {object} models.ErrorResponse "Voting closed"
// @Failure 404 {object} models.ErrorResponse
// @Router /api/audience/categories/{id}/stats [get]
func (c *VotingController) categoryStats(g *gin.Context) {
	ctx := g.Request.Context()
	categoryID := g.Param("id")

	open, err := c.recorder.VotingOpen(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	if !open {
		writeError(g, scoring.NewStateError(scoring.ErrVotingClosed, ""))
		return
	}

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
	doc, err := c.scores.Read(ctx)
	if err != nil {
		writeError(g, err)
		return
	}

	resp := models.CategoryStatsResponse{CategoryID: categoryID, Stats: make([]models.ContestantVoteStat, 0, len(contestants))}
	for _, contestant := range contestants {
		votes := doc.AudienceVotes[contestant.ID]
		resp.TotalVotes += votes
		resp.Stats = append(resp.Stats, models.ContestantVoteStat{ContestantID: contestant.ID, Name: contestant.Name, Votes: votes})
	}
	g.JSON(http.StatusOK, resp)
}

// publishedResults godoc
// @Summary Published results
// @Description Declared winners are shown as declared; published categories without them show the live top three.
// @Tags audience
// @Security BearerToken
// @Produce json
// @Success 200 {object} scoring.PublishedView
// @Failure 500 {object} models.ErrorResponse
// @Router /api/audience/results [get]
func (c *VotingController) publishedResults(g *gin.Context) {
	view, err := c.publisher.PublishedResults(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, view)
}
