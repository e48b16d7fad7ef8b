package http

import "github.com/GoSim-25-26J-441/portfolio-api/internal/projects/service"

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

type createResp struct {
	ID string `json:"id"`
}

type messageResp struct {
	Message string `json:"message"`
}

type errorResp struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
