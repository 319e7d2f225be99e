package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/transport"
	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/scoring"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

// AdminController manages judge accounts and audience members.
type AdminController struct {
	judges   storage.JudgeStorage
	audience storage.AudienceStorage
	tokens   *transport.TokenIssuer
}

func NewAdminController(judges storage.JudgeStorage, audience storage.AudienceStorage, tokens *transport.TokenIssuer) *AdminController {
	return &AdminController{
		judges:   judges,
		audience: audience,
		tokens:   tokens,
	}
}

func (c *AdminController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin", c.tokens.RequireRole(models.RoleAdmin))

	group.GET("/judges", c.listJudges)
	group.POST("/judges", c.createJudge)
	group.PUT("/judges/:id", c.updateJudge)
	group.DELETE("/judges/:id", c.deleteJudge)
	group.POST("/judges/:id/reset-password", c.resetJudgePassword)

	group.GET("/audience", c.listAudience)
	group.POST("/audience", c.createAudience)
	group.PUT("/audience/:id", c.updateAudience)
	group.DELETE("/audience/:id", c.deleteAudience)
}

// listJudges godoc
// @Summary List judges
// @Tags admin
// @Security AdminToken
// @Produce json
// @Success 200 {array} models.JudgeResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/judges [get]
func (c *AdminController) listJudges(g *gin.Context) {
	judges, err := c.judges.GetAll(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}
	responses := make([]models.JudgeResponse, 0, len(judges))
	for _, j := range judges {
		responses = append(responses, models.TransformJudgeFromStorage(j))
	}
	logging.Log.Infof("ADMIN: listed %d judges", len(responses))
	g.JSON(http.StatusOK, responses)
}

// createJudge godoc
// @Summary Create a judge account
// @Tags admin
// @Security AdminToken
// @Accept json
// @Produce json
// @Param request body models.JudgeCreateRequest true "Judge"
// @Success 201 {object} models.JudgeResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input or username taken"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/judges [post]
func (c *AdminController) createJudge(g *gin.Context) {
	var req models.JudgeCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	ctx := g.Request.Context()

	if err := c.usernameAvailable(g, req.Username, ""); err != nil {
		writeError(g, err)
		return
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		writeError(g, err)
		return
	}

	judge := &storage.Judge{
		ID:           storage.NewID(),
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		Description:  req.Description,
		Image:        req.Image,
		CreatedAt:    time.Now().UTC(),
	}
	if err := c.judges.Create(ctx, judge); err != nil {
		writeError(g, err)
		return
	}

	logging.Log.Infof("ADMIN: created judge %s (%s)", judge.ID, judge.Username)
	g.JSON(http.StatusCreated, models.TransformJudgeFromStorage(judge))
}

// updateJudge godoc
// @Summary Update a judge profile
// @Tags admin
// @Security AdminToken
// @Accept json
// @Produce json
// @Param id path string true "Judge ID"
// @Param request body models.JudgeUpdateRequest true "Judge"
// @Success 200 {object} models.JudgeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/judges/{id} [put]
func (c *AdminController) updateJudge(g *gin.Context) {
	var req models.JudgeUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	judge, err := c.requireJudge(g, g.Param("id"))
	if err != nil {
		writeError(g, err)
		return
	}
	if err := c.usernameAvailable(g, req.Username, judge.ID); err != nil {
		writeError(g, err)
		return
	}

	judge.Name = req.Name
	judge.Username = req.Username
	judge.Description = req.Description
	judge.Image = req.Image
	if err := c.judges.Update(g.Request.Context(), judge); err != nil {
		writeError(g, err)
		return
	}
	logging.Log.Infof("ADMIN: updated judge %s", judge.ID)
	g.JSON(http.StatusOK, models.TransformJudgeFromStorage(judge))
}

// deleteJudge godoc
// @Summary Delete a judge
// @Description Scores already submitted by the judge keep counting.
// @Tags admin
// @Security AdminToken
// @Produce json
// @Param id path string true "Judge ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/judges/{id} [delete]
func (c *AdminController) deleteJudge(g *gin.Context) {
	if err := c.judges.Delete(g.Request.Context(), g.Param("id")); err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.MessageResponse{Message: "judge deleted"})
}

// resetJudgePassword godoc
// @Summary Set a new password for a judge
// @Tags admin
// @Security AdminToken
// @Accept json
// @Produce json
// @Param id path string true "Judge ID"
// @Param request body models.ResetPasswordRequest true "New password"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/judges/{id}/reset-password [post]
func (c *AdminController) resetJudgePassword(g *gin.Context) {
	var req models.ResetPasswordRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	judge, err := c.requireJudge(g, g.Param("id"))
	if err != nil {
		writeError(g, err)
		return
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		writeError(g, err)
		return
	}
	judge.PasswordHash = hash
	if err := c.judges.Update(g.Request.Context(), judge); err != nil {
		writeError(g, err)
		return
	}
	logging.Log.Infof("ADMIN: reset password of judge %s", judge.ID)
	g.JSON(http.StatusOK, models.MessageResponse{Message: "password reset"})
}

// listAudience godoc
// @Summary List audience members
// @Description Login codes are not included.
// @Tags admin
// @Security AdminToken
// @Produce json
// @Success 200 {array} models.AudienceResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/audience [get]
func (c *AdminController) listAudience(g *gin.Context) {
	members, err := c.audience.GetAll(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}
	responses := make([]models.AudienceResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, models.TransformAudienceFromStorage(m, false))
	}
	logging.Log.Infof("ADMIN: listed %d audience members", len(responses))
	g.JSON(http.StatusOK, responses)
}

// createAudience godoc
// @Summary Register an audience member and generate a login code
// @Tags admin
// @Security AdminToken
// @Accept json
// @Produce json
// @Param request body models.AudienceCreateRequest true "Audience member"
// @Success 201 {object} models.AudienceResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input or email already registered"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/audience [post]
func (c *AdminController) createAudience(g *gin.Context) {
	var req models.AudienceCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	ctx := g.Request.Context()

	members, err := c.audience.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	if emailTaken(members, req.Email, "") {
		writeError(g, scoring.NewValidationError("email %s is already registered", req.Email))
		return
	}
	code, err := c.generateLoginCode(members)
	if err != nil {
		writeError(g, err)
		return
	}

	member := &storage.AudienceMember{
		ID:        storage.NewID(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Mobile:    req.Mobile,
		Email:     strings.TrimSpace(req.Email),
		Company:   req.Company,
		LoginCode: code,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.audience.Create(ctx, member); err != nil {
		writeError(g, err)
		return
	}

	logging.Log.Infof("ADMIN: registered audience member %s", member.ID)
	g.JSON(http.StatusCreated, models.TransformAudienceFromStorage(member, true))
}

// updateAudience godoc
// @Summary Update an audience member
// @Tags admin
// @Security AdminToken
// @Accept json
// @Produce json
// @Param id path string true "Audience member ID"
// @Param request body models.AudienceUpdateRequest true "Audience member"
// @Success 200 {object} models.AudienceResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/audience/{id} [put]
func (c *AdminController) updateAudience(g *gin.Context) {
	var req models.AudienceUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	ctx := g.Request.Context()
	id := g.Param("id")

	members, err := c.audience.GetAll(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	var member *storage.AudienceMember
	for _, m := range members {
		if m.ID == id {
			member = m
		}
	}
	if member == nil {
		writeError(g, &scoring.NotFoundError{Entity: "audience member", ID: id})
		return
	}
	if emailTaken(members, req.Email, id) {
		writeError(g, scoring.NewValidationError("email %s is already registered", req.Email))
		return
	}

	member.FirstName = req.FirstName
	member.LastName = req.LastName
	member.Email = strings.TrimSpace(req.Email)
	member.Mobile = req.Mobile
	member.Company = req.Company
	if err := c.audience.Update(ctx, member); err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformAudienceFromStorage(member, false))
}

// deleteAudience godoc
// @Summary Delete an audience member
// @Description Votes already cast keep counting.
// @Tags admin
// @Security AdminToken
// @Produce json
// @Param id path string true "Audience member ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/audience/{id} [delete]
func (c *AdminController) deleteAudience(g *gin.Context) {
	if err := c.audience.Delete(g.Request.Context(), g.Param("id")); err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.MessageResponse{Message: "audience member deleted"})
}

func (c *AdminController) requireJudge(g *gin.Context, id string) (*storage.Judge, error) {
	judge, err := c.judges.Get(g.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if judge == nil {
		return nil, &scoring.NotFoundError{Entity: "judge", ID: id}
	}
	return judge, nil
}

func (c *AdminController) usernameAvailable(g *gin.Context, username, exceptID string) error {
	existing, err := c.judges.GetByUsername(g.Request.Context(), username)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return scoring.NewValidationError("username %s is already taken", username)
	}
	return nil
}

func emailTaken(members []*storage.AudienceMember, email, exceptID string) bool {
	email = strings.TrimSpace(email)
	for _, m := range members {
		if m.ID != exceptID && strings.EqualFold(m.Email, email) {
			return true
		}
	}
	return false
}

// generateLoginCode retries until the code is unused.
func (c *AdminController) generateLoginCode(members []*storage.AudienceMember) (string, error) {
	used := make(map[string]bool, len(members))
	for _, m := range members {
		used[m.LoginCode] = true
	}
	for {
		code, err := gonanoid.Generate(models.LoginCodeAlphabet, models.LoginCodeLength)
		if err != nil {
			logging.Log.Errorf("ADMIN: failed to generate login code: %v", err)
			return "", err
		}
		if !used[code] {
			return code, nil
		}
	}
}
