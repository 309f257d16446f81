package appointment

import (
	"errors"
	"net/http"
	"time"

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
	g.GET("/appointments", h.ListAppointments)
	g.GET("/appointments/:id", h.GetAppointment)
	g.GET("/appointments/:id/series", h.GetSeries)
	g.POST("/appointments", h.CreateAppointment)
	g.PUT("/appointments/:id", h.UpdateAppointment)
	g.DELETE("/appointments/:id", h.DeleteAppointment)
}

// dateTimeLayouts are the accepted inbound date formats, most specific first.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

type createRequest struct {
	PatientID         uuid.UUID  `json:"patient_id"`
	ProviderID        uuid.UUID  `json:"provider_id"`
	ServiceID         *uuid.UUID `json:"service_id"`
	AppointmentDate   string     `json:"appointment_date"`
	DurationMinutes   int        `json:"duration_minutes"`
	Status            string     `json:"status"`
	Modality          string     `json:"modality"`
	Type              string     `json:"type"`
	Notes             *string    `json:"notes"`
	MeetingURL        *string    `json:"meeting_url"`
	RecurrenceRule    *RuleInput `json:"recurrence_rule"`
	RecurrenceCount   *int       `json:"recurrence_count"`
	RecurrenceEndDate *string    `json:"recurrence_end_date"`
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	if tenantID == uuid.Nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no tenant on request")
	}

	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := &CreateSeriesInput{
		PatientID:       req.PatientID,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		DurationMinutes: req.DurationMinutes,
		Status:          req.Status,
		Modality:        req.Modality,
		Type:            req.Type,
		Notes:           req.Notes,
		MeetingURL:      req.MeetingURL,
		RecurrenceRule:  req.RecurrenceRule,
		RecurrenceCount: req.RecurrenceCount,
	}
	if req.AppointmentDate != "" {
		start, err := parseDateTime(req.AppointmentDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment_date")
		}
		in.StartDate = start
	}
	if req.RecurrenceEndDate != nil && *req.RecurrenceEndDate != "" {
		end, err := parseDateTime(*req.RecurrenceEndDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid recurrence_end_date")
		}
		in.RecurrenceEndDate = &end
	}

	result, err := h.svc.CreateSeries(c.Request().Context(), tenantID,
		auth.UserIDFromContext(c.Request().Context()), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), tenantID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) GetSeries(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.GetSeries(c.Request().Context(), tenantID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	pg := pagination.FromContext(c)

	var from, to *time.Time
	if s := c.QueryParam("from"); s != "" {
		t, err := parseDateTime(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
		}
		from = &t
	}
	if s := c.QueryParam("to"); s != "" {
		t, err := parseDateTime(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
		to = &t
	}

	items, total, err := h.svc.ListAppointments(c.Request().Context(), tenantID, from, to, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// seriesScope interprets the apply_to_series / delete_series query values.
// Clients send "true", "1", or "all" interchangeably.
func seriesScope(v string) bool {
	switch v {
	case "true", "1", "all":
		return true
	}
	return false
}

type updateRequest struct {
	Patch
	AppointmentDate *string `json:"appointment_date"`
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := req.Patch
	if req.AppointmentDate != nil {
		t, err := parseDateTime(*req.AppointmentDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment_date")
		}
		p.AppointmentDate = &t
	}

	applyToSeries := seriesScope(c.QueryParam("apply_to_series"))
	if err := h.svc.UpdateAppointment(c.Request().Context(), tenantID, id, applyToSeries, &p); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	tenantID := auth.TenantFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	deleteSeries := seriesScope(c.QueryParam("delete_series"))
	if err := h.svc.DeleteAppointment(c.Request().Context(), tenantID, id, deleteSeries); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// httpError maps the service error taxonomy onto transport status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	case apperr.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
}
