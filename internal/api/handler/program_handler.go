package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

type ProgramHandler struct {
	programs ports.ProgramService
}

func NewProgramHandler(programs ports.ProgramService) *ProgramHandler {
	return &ProgramHandler{programs: programs}
}

type programRequest struct {
	Name                string `json:"name" validate:"required"`
	Description         string `json:"description" validate:"required"`
	Code                string `json:"code" validate:"omitempty,max=10"`
	StartDate           string `json:"start_date" validate:"required"`
	EndDate             string `json:"end_date"`
	EligibilityCriteria string `json:"eligibility_criteria"`
	Capacity            *int   `json:"capacity"`
	Location            string `json:"location" validate:"required"`
	CategoryID          int64  `json:"category_id" validate:"required"`
}

func (r programRequest) toInput(id int64) (ports.SaveProgramInput, error) {
	start, err := time.Parse(domain.DateLayout, r.StartDate)
	if err != nil {
		return ports.SaveProgramInput{}, domain.FieldErrors{"start_date": "date must be YYYY-MM-DD"}
	}
	in := ports.SaveProgramInput{
		ID:                  id,
		Name:                r.Name,
		Description:         r.Description,
		Code:                r.Code,
		StartDate:           start,
		EligibilityCriteria: r.EligibilityCriteria,
		Capacity:            r.Capacity,
		Location:            r.Location,
		CategoryID:          r.CategoryID,
	}
	if r.EndDate != "" {
		end, err := time.Parse(domain.DateLayout, r.EndDate)
		if err != nil {
			return ports.SaveProgramInput{}, domain.FieldErrors{"end_date": "date must be YYYY-MM-DD"}
		}
		in.EndDate = &end
	}
	return in, nil
}

func (h *ProgramHandler) List(c echo.Context) error {
	view, err := h.programs.List(c.Request().Context(), ports.ProgramListInput{
		Query:      c.QueryParam("q"),
		CategoryID: int64Param(c.QueryParam("category")),
		Page:       intParam(c.QueryParam("page")),
		PageSize:   intParam(c.QueryParam("page_size")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// NewForm serves the reference data the create form needs.
func (h *ProgramHandler) NewForm(c echo.Context) error {
	form, err := h.programs.NewForm(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, form)
}

// EditForm serves reference data plus the record under edit.
func (h *ProgramHandler) EditForm(c echo.Context) error {
	form, err := h.programs.LoadForm(c.Request().Context(), pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, form)
}

func (h *ProgramHandler) Get(c echo.Context) error {
	program, err := h.programs.Get(c.Request().Context(), pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, program)
}

func (h *ProgramHandler) Create(c echo.Context) error {
	return h.save(c, 0)
}

func (h *ProgramHandler) Update(c echo.Context) error {
	return h.save(c, pathID(c))
}

func (h *ProgramHandler) save(c echo.Context, id int64) error {
	var req programRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	in, err := req.toInput(id)
	if err != nil {
		return err
	}

	res, err := h.programs.Save(c.Request().Context(), in)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	return c.JSON(status, res)
}

func (h *ProgramHandler) Delete(c echo.Context) error {
	if err := h.programs.Delete(c.Request().Context(), pathID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *ProgramHandler) Categories(c echo.Context) error {
	cats, err := h.programs.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *ProgramHandler) GetCategory(c echo.Context) error {
	cats, err := h.programs.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	id := pathID(c)
	for _, cat := range cats {
		if cat.ID == id {
			return c.JSON(http.StatusOK, cat)
		}
	}
	return domain.ErrNotFound
}

func (h *ProgramHandler) CreateCategory(c echo.Context) error {
	return h.saveCategory(c, 0)
}

func (h *ProgramHandler) UpdateCategory(c echo.Context) error {
	return h.saveCategory(c, pathID(c))
}

func (h *ProgramHandler) saveCategory(c echo.Context, id int64) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cat, err := h.programs.SaveCategory(c.Request().Context(), id, req.Name, req.Description)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	return c.JSON(status, cat)
}

func (h *ProgramHandler) DeleteCategory(c echo.Context) error {
	if err := h.programs.DeleteCategory(c.Request().Context(), pathID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) int64 {
	return int64Param(c.Param("id"))
}

func int64Param(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
