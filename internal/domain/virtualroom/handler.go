package virtualroom

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
	g := api.Group("", auth.RequireRole(auth.RolePsychologist, auth.RoleReceptionist))
	g.GET("/virtual-rooms", h.ListRooms)
	g.GET("/virtual-rooms/:id", h.GetRoom)
	g.GET("/virtual-rooms/code/:code", h.GetRoomByCode)
	g.POST("/virtual-rooms", h.CreateRoom)
	g.PUT("/virtual-rooms/:id", h.UpdateRoom)
	g.DELETE("/virtual-rooms/:id", h.DeleteRoom)
}

func (h *Handler) CreateRoom(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := auth.TenantFromContext(ctx)
	if tenantID == uuid.Nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no tenant on request")
	}

	var rm Room
	if err := c.Bind(&rm); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rm.TenantID = tenantID
	rm.CreatorUserID = auth.UserIDFromContext(ctx)
	if err := h.svc.CreateRoom(ctx, &rm); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rm)
}

func (h *Handler) GetRoom(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rm, err := h.svc.GetRoom(c.Request().Context(), tenantID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rm)
}

func (h *Handler) GetRoomByCode(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing code")
	}
	rm, err := h.svc.GetRoomByCode(c.Request().Context(), tenantID, code)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rm)
}

func (h *Handler) ListRooms(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListRooms(c.Request().Context(), tenantID, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateRoom(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var rm Room
	if err := c.Bind(&rm); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rm.ID = id
	rm.TenantID = tenantID
	if err := h.svc.UpdateRoom(c.Request().Context(), &rm); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rm)
}

func (h *Handler) DeleteRoom(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteRoom(c.Request().Context(), tenantID, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func httpError(err error) error {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "virtual room not found")
	case apperr.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
}
