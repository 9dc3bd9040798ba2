package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

type ClientHandler struct {
	clients ports.ClientService
}

func NewClientHandler(clients ports.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type clientRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	IDNumber    string `json:"id_number"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=M F O"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email" validate:"omitempty,email"`
	County      string `json:"county" validate:"required"`
	SubCounty   string `json:"sub_county" validate:"required"`
	Ward        string `json:"ward"`
	BloodType   string `json:"blood_type"`
	Allergies   string `json:"allergies"`
	Origin      string `json:"origin"`
}

func (r clientRequest) toInput(id domain.ClientID) (ports.SaveClientInput, error) {
	dob, err := time.Parse(domain.DateLayout, r.DateOfBirth)
	if err != nil {
		return ports.SaveClientInput{}, domain.FieldErrors{"date_of_birth": "date must be YYYY-MM-DD"}
	}
	return ports.SaveClientInput{
		ID:          id,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		IDNumber:    r.IDNumber,
		DateOfBirth: dob,
		Gender:      r.Gender,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		County:      r.County,
		SubCounty:   r.SubCounty,
		Ward:        r.Ward,
		BloodType:   r.BloodType,
		Allergies:   r.Allergies,
		Origin:      r.Origin,
	}, nil
}

// List serves the client list view with search, county facet, and paging.
func (h *ClientHandler) List(c echo.Context) error {
	view, err := h.clients.List(c.Request().Context(), ports.ClientListInput{
		Query:    c.QueryParam("q"),
		County:   c.QueryParam("county"),
		Page:     intParam(c.QueryParam("page")),
		PageSize: intParam(c.QueryParam("page_size")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Search runs the registry's free-text search directly.
func (h *ClientHandler) Search(c echo.Context) error {
	results, err := h.clients.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

// Get serves one client record alone.
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.clients.Get(c.Request().Context(), domain.ClientID(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Profile serves one client with enrollments joined in.
func (h *ClientHandler) Profile(c echo.Context) error {
	profile, err := h.clients.Profile(c.Request().Context(), domain.ClientID(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ClientHandler) Create(c echo.Context) error {
	return h.save(c, "")
}

func (h *ClientHandler) Update(c echo.Context) error {
	return h.save(c, domain.ClientID(c.Param("id")))
}

func (h *ClientHandler) save(c echo.Context, id domain.ClientID) error {
	var req clientRequest
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

	res, err := h.clients.Save(c.Request().Context(), in)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	return c.JSON(status, res)
}

// Register is the unauthenticated self-registration endpoint.
func (h *ClientHandler) Register(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	in, err := req.toInput("")
	if err != nil {
		return err
	}

	res, err := h.clients.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.clients.Delete(c.Request().Context(), domain.ClientID(c.Param("id"))); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// intParam parses a numeric query parameter, treating absence or garbage as 0.
func intParam(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
