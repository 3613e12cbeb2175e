package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the records API. The list endpoint always
// answers an empty collection with 200 and an empty array; the legacy
// 404-for-empty behavior is gone (clients of old deployments are
// handled on the consuming side).
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.POST("/patients", h.CreatePatient)
}

type errorResponse struct {
	Message string `json:"message"`
}

// ListPatients returns the full collection as a JSON array.
func (h *Handler) ListPatients(c echo.Context) error {
	patients, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: err.Error()})
	}
	if patients == nil {
		patients = []*Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}

// CreatePatient stores one new document and echoes it back with the
// server-assigned identity applied.
func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	}
	stored, err := h.svc.Create(c.Request().Context(), p.Doc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusCreated, stored)
}
