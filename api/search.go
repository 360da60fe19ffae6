package api

import (
	"net/http"

	"github.com/Domenick1991/spaceflights/internal/service/search"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service search.SearchUseCase
}

type searchResponse struct {
	Missions []missionResponse `json:"missions"`
	Flights  []flightResponse  `json:"flights"`
}

func NewSearchHandler(service search.SearchUseCase) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Register(router *gin.RouterGroup) {
	router.GET("/search/", h.search)
}

func (h *SearchHandler) search(c *gin.Context) {
	result, err := h.service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, searchResponse{
		Missions: toMissionResponses(result.Missions),
		Flights:  toFlightResponses(result.Flights),
	})
}
