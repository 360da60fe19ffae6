package api

import (
	"net/http"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	FlightNumber   string `json:"flight_number" binding:"required,max=50"`
	Destination    string `json:"destination" binding:"required,max=255"`
	LaunchDate     string `json:"launch_date" binding:"required"`
	AvailableSeats *int   `json:"seats_available" binding:"required,min=0"`
}

type flightPatchRequest struct {
	FlightNumber *string `json:"flight_number" binding:"omitempty,max=50"`
	Destination  *string `json:"destination" binding:"omitempty,max=255"`
	LaunchDate   *string `json:"launch_date"`
}

type flightResponse struct {
	ID             int64  `json:"id"`
	FlightNumber   string `json:"flight_number"`
	Destination    string `json:"destination"`
	LaunchDate     string `json:"launch_date"`
	AvailableSeats int    `json:"seats_available"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id/", h.get)
	router.PUT("/:id/", h.update)
	router.PATCH("/:id/", h.patch)
	router.DELETE("/:id/", h.delete)
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		Destination:    f.Destination,
		LaunchDate:     formatDate(f.LaunchDate),
		AvailableSeats: f.AvailableSeats,
	}
}

func toFlightResponses(list []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(list))
	for i := range list {
		out = append(out, toFlightResponse(&list[i]))
	}
	return out
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(list))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) bindInput(c *gin.Context) (domain.FlightInput, bool) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return domain.FlightInput{}, false
	}
	launch, err := parseDate("launch_date", req.LaunchDate)
	if err != nil {
		writeError(c, err)
		return domain.FlightInput{}, false
	}
	return domain.FlightInput{
		FlightNumber:   req.FlightNumber,
		Destination:    req.Destination,
		LaunchDate:     launch,
		AvailableSeats: *req.AvailableSeats,
	}, true
}

func (h *FlightHandler) create(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	flight, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	flight, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req flightPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	launch, err := parseOptionalDate("launch_date", req.LaunchDate)
	if err != nil {
		writeError(c, err)
		return
	}
	flight, err := h.service.Patch(c.Request.Context(), id, domain.FlightPatch{
		FlightNumber: req.FlightNumber,
		Destination:  req.Destination,
		LaunchDate:   launch,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
