package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/scoring"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

// writeError maps the scoring error taxonomy and storage sentinels to HTTP.
func writeError(g *gin.Context, err error) {
	var (
		validation  *scoring.ValidationError
		notFound    *scoring.NotFoundError
		state       *scoring.StateError
		persistence *scoring.PersistenceError
	)

	switch {
	case errors.As(err, &validation):
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: validation.Error(), Missing: validation.Missing})
	case errors.As(err, &notFound):
		g.JSON(http.StatusNotFound, models.ErrorResponse{Error: notFound.Error()})
	case errors.As(err, &state):
		status := http.StatusBadRequest
		if errors.Is(err, scoring.ErrVotingClosed) || errors.Is(err, scoring.ErrScoreFinalized) {
			status = http.StatusForbidden
		}
		g.JSON(status, models.ErrorResponse{Error: state.Error()})
	case errors.Is(err, storage.ErrItemNotFound):
		g.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrItemWithIDAlreadyExists):
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.As(err, &persistence):
		logging.Log.Errorf("%s %s: %v", g.Request.Method, g.Request.URL.Path, persistence)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "storage error"})
	default:
		logging.Log.Errorf("%s %s: unexpected error: %v", g.Request.Method, g.Request.URL.Path, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}
}

func writeBindError(g *gin.Context, err error) {
	g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request format: " + err.Error()})
}
