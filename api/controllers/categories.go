package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/transport"
	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/scoring"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

// CatalogController administers categories, contestants and scoring criteria, and
// serves the read-only catalog to judges and audience.
type CatalogController struct {
	categories  storage.CategoryStorage
	contestants storage.ContestantStorage
	settings    storage.SettingsStorage
	tokens      *transport.TokenIssuer
}

func NewCatalogController(categories storage.CategoryStorage, contestants storage.ContestantStorage, settings storage.SettingsStorage, tokens *transport.TokenIssuer) *CatalogController {
	return &CatalogController{
		categories:  categories,
		contestants: contestants,
		settings:    settings,
		tokens:      tokens,
	}
}

func (c *CatalogController) RegisterRoutes(engine *gin.Engine) {
	admin := engine.Group("/api/admin", c.tokens.RequireRole(models.RoleAdmin))
	admin.GET("/categories", c.listCategories)
	admin.POST("/categories", c.createCategory)
	admin.GET("/categories/:id", c.getCategory)
	admin.PUT("/categories/:id", c.updateCategory)
	admin.DELETE("/categories/:id", c.deleteCategory)
	admin.GET("/categories/:id/criteria", c.getCriteria)
	admin.PUT("/categories/:id/criteria", c.updateCriteria)
	admin.GET("/contestants", c.listContestants)
	admin.POST("/contestants", c.createContestant)
	admin.GET("/contestants/:id", c.getContestant)
	admin.PUT("/contestants/:id", c.updateContestant)
	admin.DELETE("/contestants/:id", c.deleteContestant)

	judge := engine.Group("/api/judge", c.tokens.RequireRole(models.RoleJudge))
	judge.GET("/categories", c.listCategories)
	judge.GET("/categories/:id/contestants", c.listCategoryContestants)
	judge.GET("/categories/:id/criteria", c.getCriteria)

	audience := engine.Group("/api/audience", c.tokens.RequireRole(models.RoleAudience))
	audience.GET("/categories", c.listCategories)
	audience.GET("/categories/:id/contestants", c.listCategoryContestants)
}

// listCategories godoc
// @Summary List all categories
// @Tags catalog
// @Security AdminToken
// @Produce json
// @Success 200 {array} models.CategoryResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/categories [get]
func (c *CatalogController) listCategories(g *gin.Context) {
	categories, err := c.categories.GetAll(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}

	responses := make([]models.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		responses = append(responses, models.TransformCategoryFromStorage(cat))
	}
	g.JSON(http.StatusOK, responses)
}

// getCategory godoc
// @Summary Get a category by ID
// @Tags catalog
// @Security AdminToken
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.CategoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/categories/{id} [get]
func (c *CatalogController) getCategory(g *gin.Context) {
	category, err := c.requireCategory(g, g.Param("id"))
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformCategoryFromStorage(category))
}

// createCategory godoc
// @Summary Create a category
// @Tags catalog
// @Security AdminToken
// @Accept json
// @Produce json
// @Param request body models.CategoryCreateRequest true "Category"
// @Success 201 {object} models.CategoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/categories [post]
func (c *CatalogController) createCategory(g *gin.Context) {
	var req models.CategoryCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	if req.ID == "" {
		req.ID = storage.NewID()
	}

	category := &storage.Category{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.categories.Create(g.Request.Context(), category); err != nil {
		writeError(g, err)
		return
	}

	logging.Log.Infof("ADMIN: created category %s (%s)", category.ID, category.Name)
	g.JSON(http.StatusCreated, models.TransformCategoryFromStorage(category))
}

// updateCategory godoc
// @Summary Update a category
// @Tags catalog
// @Security AdminToken
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body models.CategoryUpdateRequest true "Category"
// @Success 200 {object} models.CategoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/categories/{id} [put]
func (c *CatalogController) updateCategory(g *gin.Context) {
	var req models.CategoryUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}

	category, err := c.requireCategory(g, g.Param("id"))
	if err != nil {
		writeError(g, err)
		return
	}
	category.Name = req.Name
	category.Description = req.Description
	category.Image = req.Image

	if err := c.categories.Update(g.Request.Context(), category); err != nil {
		writeError(g, err)
		return
	}
	logging.Log.Infof("ADMIN: updated category %s", category.ID)
	g.JSON(http.StatusOK, models.TransformCategoryFromStorage(category))
}

// deleteCategory godoc
// @Summary Delete a category without contestants
// @Tags catalog
// @Security AdminToken
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Category still has contestants"
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/categories/{id} [delete]
func (c *CatalogController) deleteCategory(g *gin.Context) {
	ctx := g.Request.Context()
	id := g.Param("id")

	contestants, err := c.contestants.GetByCategory(ctx, id)
	if err != nil {
		writeError(g, err)
		return
	}
	if len(contestants) > 0 {
		writeError(g, scoring.NewStateError(scoring.ErrCategoryInUse, fmt.Sprintf("%d contestants", len(contestants))))
		return
	}
	if err := c.categories.Delete(ctx, id); err != nil {
		writeError(g, err)
		return
	}

	settings, err := c.settings.Read(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	if _, ok := settings.CategoryScoringCriteria[id]; ok {
		delete(settings.CategoryScoringCriteria, id)
		if err := c.settings.Write(ctx, settings); err != nil {
			writeError(g, err)
			return
		}
	}

	g.JSON(http.StatusOK, models.MessageResponse{Message: "category deleted"})
}

// getCriteria godoc
// @Summary Get the scoring criteria of a category
// @Tags catalog
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.CriteriaResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/categories/{id}/criteria [get]
func (c *CatalogController) getCriteria(g *gin.Context) {
	category, err := c.requireCategory(g, g.Param("id"))
	if err != nil {
		writeError(g, err)
		return
	}
	settings, err := c.settings.Read(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, criteriaResponse(category.ID, settings.Criteria(category.ID)))
}

// updateCriteria godoc
// @Summary Replace the scoring criteria of a category
// @Description Existing judge scores keep the totals computed when they were submitted.
// @Tags catalog
// @Security AdminToken
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body models.CriteriaUpdateRequest true "Criteria"
// @Success 200 {object} models.CriteriaResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/categories/{id}/criteria [put]
func (c *CatalogController) updateCriteria(g *gin.Context) {
	var req models.CriteriaUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	category, err := c.requireCategory(g, g.Param("id"))
	if err != nil {
		writeError(g, err)
		return
	}

	criteria := make([]*storage.Criterion, 0, len(req.Criteria))
	for i, r := range req.Criteria {
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("%s_%d", category.ID, i)
		}
		criteria = append(criteria, &storage.Criterion{
			ID:          id,
			Name:        r.Name,
			Description: r.Description,
			Weight:      r.Weight,
			MaxScore:    r.MaxScore,
		})
	}
	if err := scoring.ValidateCriteria(criteria); err != nil {
		writeError(g, err)
		return
	}

	ctx := g.Request.Context()
	settings, err := c.settings.Read(ctx)
	if err != nil {
		writeError(g, err)
		return
	}
	now := time.Now().UTC()
	settings.CategoryScoringCriteria[category.ID] = criteria
	settings.UpdatedAt = &now
	if err := c.settings.Write(ctx, settings); err != nil {
		writeError(g, err)
		return
	}

	logging.Log.Infof("ADMIN: set %d criteria for category %s", len(criteria), category.ID)
	g.JSON(http.StatusOK, criteriaResponse(category.ID, criteria))
}

// listContestants godoc
// @Summary List contestants
// @Tags catalog
// @Security AdminToken
// @Produce json
// @Param categoryId query string false "Restrict to one category"
// @Success 200 {array} models.ContestantResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/contestants [get]
func (c *CatalogController) listContestants(g *gin.Context) {
	contestants, err := c.contestants.GetAll(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}
	if categoryID := g.Query("categoryId"); categoryID != "" {
		contestants = storage.FilterByCategory(contestants, categoryID)
	}
	g.JSON(http.StatusOK, contestantResponses(contestants))
}

// listCategoryContestants godoc
// @Summary List the contestants of a category
// @Tags catalog
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {array} models.ContestantResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/judge/categories/{id}/contestants [get]
func (c *CatalogController) listCategoryContestants(g *gin.Context) {
	category, err := c.requireCategory(g, g.Param("id"))
	if err != nil {
		writeError(g, err)
		return
	}
	contestants, err := c.contestants.GetByCategory(g.Request.Context(), category.ID)
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, contestantResponses(contestants))
}

// getContestant godoc
// @Summary Get a contestant by ID
// @Tags catalog
// @Security AdminToken
// @Produce json
// @Param id path string true "Contestant ID"
// @Success 200 {object} models.ContestantResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/contestants/{id} [get]
func (c *CatalogController) getContestant(g *gin.Context) {
	id := g.Param("id")
	contestant, err := c.contestants.Get(g.Request.Context(), id)
	if err != nil {
		writeError(g, err)
		return
	}
	if contestant == nil {
		writeError(g, &scoring.NotFoundError{Entity: "contestant", ID: id})
		return
	}
	g.JSON(http.StatusOK, models.TransformContestantFromStorage(contestant))
}

// createContestant godoc
// @Summary Create a contestant in an existing category
// @Tags catalog
// @Security AdminToken
// @Accept json
// @Produce json
// @Param request body models.ContestantCreateRequest true "Contestant"
// @Success 201 {object} models.ContestantResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "Unknown category"
// @Router /api/admin/contestants [post]
func (c *CatalogController) createContestant(g *gin.Context) {
	var req models.ContestantCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	if _, err := c.requireCategory(g, req.CategoryID); err != nil {
		writeError(g, err)
		return
	}
	if req.ID == "" {
		req.ID = storage.NewID()
	}

	contestant := &storage.Contestant{
		ID:          req.ID,
		Name:        req.Name,
		Company:     req.Company,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.contestants.Create(g.Request.Context(), contestant); err != nil {
		writeError(g, err)
		return
	}

	logging.Log.Infof("ADMIN: created contestant %s in category %s", contestant.ID, contestant.CategoryID)
	g.JSON(http.StatusCreated, models.TransformContestantFromStorage(contestant))
}

// updateContestant godoc
// @Summary Update a contestant
// @Tags catalog
// @Security AdminToken
// @Accept json
// @Produce json
// @Param id path string true "Contestant ID"
// @Param request body models.ContestantUpdateRequest true "Contestant"
// @Success 200 {object} models.ContestantResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/contestants/{id} [put]
func (c *CatalogController) updateContestant(g *gin.Context) {
	var req models.ContestantUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		writeBindError(g, err)
		return
	}
	ctx := g.Request.Context()
	id := g.Param("id")

	contestant, err := c.contestants.Get(ctx, id)
	if err != nil {
		writeError(g, err)
		return
	}
	if contestant == nil {
		writeError(g, &scoring.NotFoundError{Entity: "contestant", ID: id})
		return
	}
	if _, err := c.requireCategory(g, req.CategoryID); err != nil {
		writeError(g, err)
		return
	}

	contestant.Name = req.Name
	contestant.Company = req.Company
	contestant.Description = req.Description
	contestant.CategoryID = req.CategoryID
	contestant.Image = req.Image
	if err := c.contestants.Update(ctx, contestant); err != nil {
		writeError(g, err)
		return
	}
	logging.Log.Infof("ADMIN: updated contestant %s", contestant.ID)
	g.JSON(http.StatusOK, models.TransformContestantFromStorage(contestant))
}

// deleteContestant godoc
// @Summary Delete a contestant
// @Description Stored scores and votes for the contestant are kept but no longer ranked.
// @Tags catalog
// @Security AdminToken
// @Produce json
// @Param id path string true "Contestant ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/contestants/{id} [delete]
func (c *CatalogController) deleteContestant(g *gin.Context) {
	if err := c.contestants.Delete(g.Request.Context(), g.Param("id")); err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.MessageResponse{Message: "contestant deleted"})
}

func (c *CatalogController) requireCategory(g *gin.Context, id string) (*storage.Category, error) {
	category, err := c.categories.Get(g.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &scoring.NotFoundError{Entity: "category", ID: id}
	}
	return category, nil
}

func criteriaResponse(categoryID string, criteria []*storage.Criterion) models.CriteriaResponse {
	var total float64
	for _, c := range criteria {
		total += c.Weight
	}
	return models.CriteriaResponse{CategoryID: categoryID, Criteria: criteria, TotalWeight: total}
}

func contestantResponses(contestants []*storage.Contestant) []models.ContestantResponse {
	responses := make([]models.ContestantResponse, 0, len(contestants))
	for _, c := range contestants {
		responses = append(responses, models.TransformContestantFromStorage(c))
	}
	return responses
}
