package catalog

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
	// Reading the catalog is open to all staff; managing it is admin work.
	readGroup := api.Group("", auth.RequireRole(auth.RolePsychologist, auth.RoleReceptionist))
	readGroup.GET("/services", h.ListItems)
	readGroup.GET("/services/:id", h.GetItem)

	writeGroup := api.Group("", auth.RequireRole(auth.RoleAdmin))
	writeGroup.POST("/services", h.CreateItem)
	writeGroup.PUT("/services/:id", h.UpdateItem)
	writeGroup.DELETE("/services/:id", h.DeleteItem)
}

func (h *Handler) CreateItem(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	if tenantID == uuid.Nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no tenant on request")
	}

	var it Item
	if err := c.Bind(&it); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	it.TenantID = tenantID
	if err := h.svc.CreateItem(c.Request().Context(), &it); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *Handler) GetItem(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	it, err := h.svc.GetItem(c.Request().Context(), tenantID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, it)
}

func (h *Handler) ListItems(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	pg := pagination.FromContext(c)
	activeOnly := c.QueryParam("active") == "true"

	items, total, err := h.svc.ListItems(c.Request().Context(), tenantID, activeOnly, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateItem(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var it Item
	if err := c.Bind(&it); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	it.ID = id
	it.TenantID = tenantID
	if err := h.svc.UpdateItem(c.Request().Context(), &it); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, it)
}

func (h *Handler) DeleteItem(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteItem(c.Request().Context(), tenantID, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func httpError(err error) error {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	case apperr.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
}
