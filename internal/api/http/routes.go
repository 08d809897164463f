package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	h := &handlers{service: service}

	v1 := app.Group("/api/v1")

	v1.Post("/sessions", h.openSession)
	v1.Get("/sessions/:id", h.getSession)
	v1.Delete("/sessions/:id", h.closeSession)
	v1.Post("/sessions/:id/search", h.search)
	v1.Put("/sessions/:id/location", h.pickLocation)
	v1.Put("/sessions/:id/units", h.setUnits)
	v1.Put("/sessions/:id/day", h.selectDay)

	v1.Get("/suggestions", h.suggest)
}

// ErrorHandler renders errors as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

type handlers struct {
	service *weather.Service
}

// sessionResponse is the body of every session endpoint.
type sessionResponse struct {
	Session string                `json:"session"`
	View    weather.DashboardView `json:"view"`
}

func newSessionResponse(st weather.State) sessionResponse {
	return sessionResponse{Session: st.SessionID, View: st.View()}
}

// searchRequest is the body of the search endpoint. An empty query is a
// search with no result, not a bad request.
type searchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

// locationRequest carries a picked suggestion.
type locationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Name      string   `json:"name" validate:"required"`
	Admin1    string   `json:"admin1"`
	Country   string   `json:"country"`
	Timezone  string   `json:"timezone"`
}

func (l locationRequest) toRecord() weather.LocationRecord {
	return weather.Normalize(weather.RawLocation{
		Latitude:  *l.Latitude,
		Longitude: *l.Longitude,
		Name:      l.Name,
		Country:   l.Country,
		Admin1:    l.Admin1,
		Timezone:  l.Timezone,
	})
}

type unitsRequest struct {
	System string `json:"system" validate:"required,oneof=metric imperial"`
}

type dayRequest struct {
	Index *int `json:"index" validate:"required,gte=0"`
}

func (h *handlers) openSession(c *fiber.Ctx) error {
	st, err := h.service.Open(c.UserContext())
	if err != nil && st.SessionID == "" {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to open session")
	}
	// A failed initial fetch still creates the session; the view carries the notice.
	return c.Status(fiber.StatusCreated).JSON(newSessionResponse(st))
}

func (h *handlers) getSession(c *fiber.Ctx) error {
	st, err := h.service.Snapshot(c.Params("id"))
	if err != nil {
		return sessionError(err)
	}
	return c.JSON(newSessionResponse(st))
}

func (h *handlers) closeSession(c *fiber.Ctx) error {
	if err := h.service.Close(c.Params("id")); err != nil {
		return sessionError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) search(c *fiber.Ctx) error {
	var req searchRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	st, err := h.service.Search(c.UserContext(), c.Params("id"), strings.TrimSpace(req.Query))
	return respond(c, st, err)
}

func (h *handlers) pickLocation(c *fiber.Ctx) error {
	var req locationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	st, err := h.service.PickLocation(c.UserContext(), c.Params("id"), req.toRecord())
	return respond(c, st, err)
}

func (h *handlers) setUnits(c *fiber.Ctx) error {
	var req unitsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	system, err := weather.ParseSystem(req.System)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	st, err := h.service.SetUnits(c.UserContext(), c.Params("id"), system)
	return respond(c, st, err)
}

func (h *handlers) selectDay(c *fiber.Ctx) error {
	var req dayRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	st, err := h.service.SelectDay(c.Params("id"), *req.Index)
	return respond(c, st, err)
}

func (h *handlers) suggest(c *fiber.Ctx) error {
	// Return a plain array for frontend convenience.
	return c.JSON(h.service.Suggest(c.UserContext(), c.Query("q")))
}

func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// respond writes the snapshot with a status derived from err. Failures that
// leave a valid snapshot behind still return it so the page can show the notice.
func respond(c *fiber.Ctx, st weather.State, err error) error {
	if err == nil {
		return c.JSON(newSessionResponse(st))
	}
	if errors.Is(err, store.ErrNotFound) {
		return sessionError(err)
	}

	status := fiber.StatusInternalServerError
	var (
		resErr   *weather.ResolutionError
		fetchErr *weather.FetchError
	)
	switch {
	case errors.Is(err, weather.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, weather.ErrDayOutOfRange):
		status = fiber.StatusBadRequest
	case errors.Is(err, weather.ErrNoForecast):
		status = fiber.StatusConflict
	case errors.As(err, &resErr), errors.As(err, &fetchErr):
		status = fiber.StatusBadGateway
	}

	if st.SessionID == "" {
		return fiber.NewError(status, err.Error())
	}
	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
		"session": st.SessionID,
		"view":    st.View(),
	})
}

func sessionError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
