package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/transport"
	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

type AuthController struct {
	admins   storage.AdminStorage
	judges   storage.JudgeStorage
	audience storage.AudienceStorage
	tokens   *transport.TokenIssuer
	limiter  *transport.RateLimiter
}

func NewAuthController(admins storage.AdminStorage, judges storage.JudgeStorage, audience storage.AudienceStorage, tokens *transport.TokenIssuer, limiter *transport.RateLimiter) *AuthController {
	return &AuthController{
		admins:   admins,
		judges:   judges,
		audience: audience,
		tokens:   tokens,
		limiter:  limiter,
	}
}

func (c *AuthController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/auth", c.limiter.Middleware())

	group.POST("/admin/login", c.adminLogin)
	group.POST("/judge/login", c.judgeLogin)
	group.POST("/audience/login", c.audienceLogin)
}

// HashPassword returns the bcrypt hash stored for judges and admins.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (c *AuthController) respondWithToken(g *gin.Context, user models.UserResponse) {
	token, err := c.tokens.Issue(transport.Identity{ID: user.ID, Role: user.Role, Username: user.Username})
	if err != nil {
		writeError(g, err)
		return
	}
	logging.Log.Infof("AUTH: %s %s logged in", user.Role, user.ID)
	g.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user})
}

// adminLogin godoc
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /api/auth/admin/login [post]
func (c *AuthController) adminLogin(g *gin.Context) {
	var req models.LoginRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "username and password are required"})
		return
	}

	admin, err := c.admins.GetByUsername(g.Request.Context(), req.Username)
	if err != nil {
		writeError(g, err)
		return
	}
	if admin == nil || !checkPassword(admin.PasswordHash, req.Password) {
		logging.Log.Warnf("AUTH: failed admin login for %s", req.Username)
		g.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}
	c.respondWithToken(g, models.TransformAdminToUser(admin))
}

// judgeLogin godoc
// @Summary Judge login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /api/auth/judge/login [post]
func (c *AuthController) judgeLogin(g *gin.Context) {
	var req models.LoginRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "username and password are required"})
		return
	}

	judge, err := c.judges.GetByUsername(g.Request.Context(), req.Username)
	if err != nil {
		writeError(g, err)
		return
	}
	if judge == nil || !checkPassword(judge.PasswordHash, req.Password) {
		logging.Log.Warnf("AUTH: failed judge login for %s", req.Username)
		g.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}
	c.respondWithToken(g, models.TransformJudgeToUser(judge))
}

// audienceLogin godoc
// @Summary Audience login with a login code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.AudienceLoginRequest true "Login code"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /api/auth/audience/login [post]
func (c *AuthController) audienceLogin(g *gin.Context) {
	var req models.AudienceLoginRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "a valid login code is required"})
		return
	}

	member, err := c.audience.GetByLoginCode(g.Request.Context(), req.LoginCode)
	if err != nil {
		writeError(g, err)
		return
	}
	if member == nil {
		logging.Log.Warnf("AUTH: unknown audience login code")
		g.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid login code"})
		return
	}
	c.respondWithToken(g, models.TransformAudienceToUser(member))
}
