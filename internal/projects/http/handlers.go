package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/portfolio-api/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/portfolio-api/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio-api/internal/projects/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) create(c *gin.Context) {
	var in domain.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.fail(c, "create", decodeError(err))
		return
	}

	id, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create", err)
		return
	}

	c.JSON(http.StatusOK, createResp{ID: id})
}

func (h *Handler) list(c *gin.Context) {
	q := service.ListQuery{
		Tag:   c.Query("tag"),
		Limit: service.DefaultListLimit,
	}

	if raw, ok := c.GetQuery("featured"); ok {
		featured, err := parseBool(raw)
		if err != nil {
			h.fail(c, "list", &domain.ValidationError{Field: "featured", Message: "must be a boolean"})
			return
		}
		q.Featured = &featured
	}

	if raw, ok := c.GetQuery("limit"); ok {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.fail(c, "list", &domain.ValidationError{Field: "limit", Message: "must be an integer"})
			return
		}
		q.Limit = limit
	}

	items, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, "list", err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) seed(c *gin.Context) {
	res, err := h.svc.Seed(c.Request.Context())
	if err != nil {
		h.fail(c, "seed", err)
		return
	}

	c.JSON(http.StatusOK, messageResp{Message: res.Message()})
}

// fail answers 400 for validation errors and 500 for everything else,
// carrying the underlying message.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	log := middleware.Logger(c).WithField("operation", op).WithError(err)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		log.Info("rejected invalid request")
		c.JSON(http.StatusBadRequest, errorResp{Error: verr.Error(), Field: verr.Field})
		return
	}

	log.Error("request failed")
	c.JSON(http.StatusInternalServerError, errorResp{Error: err.Error()})
}

func decodeError(err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &domain.ValidationError{
			Field:   typeErr.Field,
			Message: "must be of type " + typeErr.Type.String(),
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &domain.ValidationError{Message: "malformed JSON body"}
	}

	return &domain.ValidationError{Message: "invalid request body: " + err.Error()}
}

// parseBool accepts the usual query spellings: 1/0, t/f, true/false, y/n,
// yes/no and on/off, in any case.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return false, strconv.ErrSyntax
}
