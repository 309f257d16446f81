package session

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/praxis/praxis/internal/platform/apperr"
	"github.com/praxis/praxis/internal/platform/auth"
	"github.com/praxis/praxis/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Session notes are clinical records; receptionists have no access.
	g := api.Group("", auth.RequireRole(auth.RolePsychologist))
	g.GET("/sessions", h.ListSessions)
	g.GET("/sessions/:id", h.GetSession)
	g.POST("/sessions", h.CreateSession)
	g.PUT("/sessions/:id", h.UpdateSession)
	g.DELETE("/sessions/:id", h.DeleteSession)
}

func (h *Handler) CreateSession(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	if tenantID == uuid.Nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no tenant on request")
	}

	var s Session
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.TenantID = tenantID
	if err := h.svc.CreateSession(c.Request().Context(), &s); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *Handler) GetSession(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s, err := h.svc.GetSession(c.Request().Context(), tenantID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) ListSessions(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	pg := pagination.FromContext(c)

	var patientID *uuid.UUID
	if s := c.QueryParam("patient_id"); s != "" {
		pid, err := uuid.Parse(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		patientID = &pid
	}

	items, total, err := h.svc.ListSessions(c.Request().Context(), tenantID, patientID, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateSession(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var s Session
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.ID = id
	s.TenantID = tenantID
	if err := h.svc.UpdateSession(c.Request().Context(), &s); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) DeleteSession(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteSession(c.Request().Context(), tenantID, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func httpError(err error) error {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	case apperr.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
}
