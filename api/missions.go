package api

import (
	"net/http"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/service/missions"
	"github.com/gin-gonic/gin"
)

type MissionHandler struct {
	service missions.MissionUseCase
}

type missionRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	LaunchDate   string `json:"launch_date" binding:"required"`
	LaunchSite   string `json:"launch_site" binding:"required,max=255"`
	LandingDate  string `json:"landing_date" binding:"required"`
	LandingSite  string `json:"landing_site" binding:"required,max=255"`
	CrewCapacity *int   `json:"crew_capacity" binding:"required,min=0"`
}

type missionPatchRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	LaunchDate   *string `json:"launch_date"`
	LaunchSite   *string `json:"launch_site" binding:"omitempty,max=255"`
	LandingDate  *string `json:"landing_date"`
	LandingSite  *string `json:"landing_site" binding:"omitempty,max=255"`
	CrewCapacity *int    `json:"crew_capacity" binding:"omitempty,min=0"`
}

type missionResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	LaunchDate   string `json:"launch_date"`
	LaunchSite   string `json:"launch_site"`
	LandingDate  string `json:"landing_date"`
	LandingSite  string `json:"landing_site"`
	CrewCapacity int    `json:"crew_capacity"`
}

func NewMissionHandler(service missions.MissionUseCase) *MissionHandler {
	return &MissionHandler{service: service}
}

func (h *MissionHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id/", h.get)
	router.PUT("/:id/", h.update)
	router.PATCH("/:id/", h.patch)
	router.DELETE("/:id/", h.delete)
}

func toMissionResponse(m *domain.Mission) missionResponse {
	return missionResponse{
		ID:           m.ID,
		Name:         m.Name,
		LaunchDate:   formatDate(m.LaunchDate),
		LaunchSite:   m.LaunchSite,
		LandingDate:  formatDate(m.LandingDate),
		LandingSite:  m.LandingSite,
		CrewCapacity: m.CrewCapacity,
	}
}

func toMissionResponses(list []domain.Mission) []missionResponse {
	out := make([]missionResponse, 0, len(list))
	for i := range list {
		out = append(out, toMissionResponse(&list[i]))
	}
	return out
}

func (h *MissionHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMissionResponses(list))
}

func (h *MissionHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMissionResponse(m))
}

func (h *MissionHandler) bindMission(c *gin.Context) (domain.Mission, bool) {
	var req missionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return domain.Mission{}, false
	}
	launch, err := parseDate("launch_date", req.LaunchDate)
	if err != nil {
		writeError(c, err)
		return domain.Mission{}, false
	}
	landing, err := parseDate("landing_date", req.LandingDate)
	if err != nil {
		writeError(c, err)
		return domain.Mission{}, false
	}
	return domain.Mission{
		Name:         req.Name,
		LaunchDate:   launch,
		LaunchSite:   req.LaunchSite,
		LandingDate:  landing,
		LandingSite:  req.LandingSite,
		CrewCapacity: *req.CrewCapacity,
	}, true
}

func (h *MissionHandler) create(c *gin.Context) {
	in, ok := h.bindMission(c)
	if !ok {
		return
	}
	m, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMissionResponse(m))
}

func (h *MissionHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := h.bindMission(c)
	if !ok {
		return
	}
	m, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMissionResponse(m))
}

func (h *MissionHandler) patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req missionPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	launch, err := parseOptionalDate("launch_date", req.LaunchDate)
	if err != nil {
		writeError(c, err)
		return
	}
	landing, err := parseOptionalDate("landing_date", req.LandingDate)
	if err != nil {
		writeError(c, err)
		return
	}
	m, err := h.service.Patch(c.Request.Context(), id, domain.MissionPatch{
		Name:         req.Name,
		LaunchDate:   launch,
		LaunchSite:   req.LaunchSite,
		LandingDate:  landing,
		LandingSite:  req.LandingSite,
		CrewCapacity: req.CrewCapacity,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMissionResponse(m))
}

func (h *MissionHandler) delete(c *gin.Context) {
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
