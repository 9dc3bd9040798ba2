package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

type EnrollmentHandler struct {
	enrollments ports.EnrollmentService
}

func NewEnrollmentHandler(enrollments ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

type enrollRequest struct {
	ClientID       string `json:"client_id" validate:"required"`
	ProgramID      int64  `json:"program_id" validate:"required"`
	EnrollmentDate string `json:"enrollment_date"`
	FacilityName   string `json:"facility_name"`
	MFLCode        string `json:"mfl_code"`
	Notes          string `json:"notes"`
	Origin         string `json:"origin"`
}

type updateEnrollmentRequest struct {
	EnrollmentDate string `json:"enrollment_date" validate:"required"`
	IsActive       bool   `json:"is_active"`
	FacilityName   string `json:"facility_name"`
	MFLCode        string `json:"mfl_code"`
	Notes          string `json:"notes"`
}

func (h *EnrollmentHandler) List(c echo.Context) error {
	view, err := h.enrollments.List(c.Request().Context(), ports.EnrollmentListInput{
		Query:    c.QueryParam("q"),
		Page:     intParam(c.QueryParam("page")),
		PageSize: intParam(c.QueryParam("page_size")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// NewForm serves both reference collections for the enrollment form.
func (h *EnrollmentHandler) NewForm(c echo.Context) error {
	form, err := h.enrollments.NewForm(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, form)
}

func (h *EnrollmentHandler) EditForm(c echo.Context) error {
	form, err := h.enrollments.LoadForm(c.Request().Context(), pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, form)
}

// Enroll records a new enrollment through the registry's dedicated action.
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.EnrollInput{
		ClientID:     domain.ClientID(req.ClientID),
		ProgramID:    req.ProgramID,
		FacilityName: req.FacilityName,
		MFLCode:      req.MFLCode,
		Notes:        req.Notes,
		Origin:       domain.ClientID(req.Origin),
	}
	if req.EnrollmentDate != "" {
		date, err := time.Parse(domain.DateLayout, req.EnrollmentDate)
		if err != nil {
			return domain.FieldErrors{"enrollment_date": "date must be YYYY-MM-DD"}
		}
		in.EnrollmentDate = date
	}

	res, err := h.enrollments.Enroll(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *EnrollmentHandler) Update(c echo.Context) error {
	var req updateEnrollmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	date, err := time.Parse(domain.DateLayout, req.EnrollmentDate)
	if err != nil {
		return domain.FieldErrors{"enrollment_date": "date must be YYYY-MM-DD"}
	}

	res, err := h.enrollments.Update(c.Request().Context(), ports.UpdateEnrollmentInput{
		ID:             pathID(c),
		EnrollmentDate: date,
		IsActive:       req.IsActive,
		FacilityName:   req.FacilityName,
		MFLCode:        req.MFLCode,
		Notes:          req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// ToggleActive flips one enrollment's flag and returns the new value so the
// caller can patch the row in place.
func (h *EnrollmentHandler) ToggleActive(c echo.Context) error {
	active, err := h.enrollments.ToggleActive(c.Request().Context(), pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "success", "is_active": active})
}

func (h *EnrollmentHandler) Delete(c echo.Context) error {
	if err := h.enrollments.Delete(c.Request().Context(), pathID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DashboardHandler serves the read-only summary view.
type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	summary, err := h.dashboard.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"summary": summary,
		"empty":   summary.Empty(),
	})
}
