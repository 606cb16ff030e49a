package httpHandler

import (
	"errors"
	"net/http"
	"strconv"

	"irrigation-server/usecases"

	"github.com/gin-gonic/gin"
)

// Latest readings returned by the moisture-history endpoint.
const moistureHistoryLimit = 20

type SubZoneHandler struct {
	subZones *usecases.SubZoneUseCase
}

func NewSubZoneHandler(subZones *usecases.SubZoneUseCase) *SubZoneHandler {
	return &SubZoneHandler{subZones: subZones}
}

// GetSubZone handles GET /api/subzones/:id and
// GET /api/zones/:zoneId/subzones/:id
func (h *SubZoneHandler) GetSubZone(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	subZone, err := h.subZones.GetSubZone(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "SubZone not found"})
		return
	}
	c.JSON(http.StatusOK, subZone)
}

// UpdateSubZone handles PUT /api/zones/:zoneId/subzones/:id
func (h *SubZoneHandler) UpdateSubZone(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var update usecases.SubZoneUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	subZone, err := h.subZones.UpdateSubZone(id, update)
	if err != nil {
		switch {
		case errors.Is(err, usecases.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "SubZone not found"})
		case errors.Is(err, usecases.ErrUnknownPlantType), errors.Is(err, usecases.ErrUnknownSoilType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, subZone)
}

// FixIssue handles PUT /api/zones/:zoneId/subzones/:id/fix-issue
func (h *SubZoneHandler) FixIssue(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	subZone, err := h.subZones.FixIssue(id)
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "SubZone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subZone)
}

// SoilReadings handles GET /api/zones/:zoneId/subzones/:id/soil-readings
func (h *SubZoneHandler) SoilReadings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	points, err := h.subZones.SoilReadings(id)
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "SubZone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, points)
}

// MoistureHistory handles GET /api/subzones/:id/moisture-history
func (h *SubZoneHandler) MoistureHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	readings, err := h.subZones.MoistureHistory(id, moistureHistoryLimit)
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "SubZone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, readings)
}

// Irrigate handles POST /api/subzones/:id/irrigate?durationSec=N
func (h *SubZoneHandler) Irrigate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	durationSec, err := strconv.Atoi(c.Query("durationSec"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "durationSec query parameter is required"})
		return
	}

	request, err := h.subZones.TriggerIrrigation(id, durationSec)
	if err != nil {
		switch {
		case errors.Is(err, usecases.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "SubZone not found"})
		case errors.Is(err, usecases.ErrInvalidDuration):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, request)
}

// ManualIrrigation handles
// POST /api/zones/:zoneId/subzones/:id/manual-irrigation using the
// subzone's configured default duration.
func (h *SubZoneHandler) ManualIrrigation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	request, err := h.subZones.TriggerDefaultIrrigation(id)
	if err != nil {
		switch {
		case errors.Is(err, usecases.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "SubZone not found"})
		case errors.Is(err, usecases.ErrInvalidDuration):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, request)
}
