package payment

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
	g := api.Group("", auth.RequireRole(auth.RoleReceptionist))
	g.GET("/payments", h.ListPayments)
	g.GET("/payments/:id", h.GetPayment)
	g.POST("/payments", h.CreatePayment)
	g.PUT("/payments/:id", h.UpdatePayment)
	g.DELETE("/payments/:id", h.DeletePayment)
}

func (h *Handler) CreatePayment(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	if tenantID == uuid.Nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no tenant on request")
	}

	var p Payment
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.TenantID = tenantID
	if err := h.svc.CreatePayment(c.Request().Context(), &p); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPayment(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPayment(c.Request().Context(), tenantID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPayments(c echo.Context) error {
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

	items, total, err := h.svc.ListPayments(c.Request().Context(), tenantID, patientID, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdatePayment(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Payment
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	p.TenantID = tenantID
	if err := h.svc.UpdatePayment(c.Request().Context(), &p); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePayment(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeletePayment(c.Request().Context(), tenantID, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func httpError(err error) error {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "payment not found")
	case apperr.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
}
