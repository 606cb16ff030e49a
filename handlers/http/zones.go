package httpHandler

import (
	"errors"
	"net/http"
	"strconv"

	"irrigation-server/entities"
	"irrigation-server/usecases"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ZoneHandler struct {
	zones  *usecases.ZoneUseCase
	ingest *usecases.IngestUseCase
}

func NewZoneHandler(zones *usecases.ZoneUseCase, ingest *usecases.IngestUseCase) *ZoneHandler {
	return &ZoneHandler{zones: zones, ingest: ingest}
}

// parseID reads a numeric path parameter shared by all handlers in
// this package.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// ListZones handles GET /api/zones
func (h *ZoneHandler) ListZones(c *gin.Context) {
	zones, err := h.zones.GetAllZones()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve zones"})
		return
	}
	c.JSON(http.StatusOK, zones)
}

// GetZone handles GET /api/zones/:id
func (h *ZoneHandler) GetZone(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	zone, err := h.zones.GetZone(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
		return
	}
	c.JSON(http.StatusOK, zone)
}

// UpdateZone handles PUT /api/zones/:id
func (h *ZoneHandler) UpdateZone(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var incoming entities.Zone
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	zone, err := h.zones.UpdateZone(id, &incoming)
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, zone)
}

// DeleteZone handles DELETE /api/zones/:id
func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.zones.DeleteZone(id); err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ReceiveSensorData handles POST /api/zones/readings. It ingests the
// batch and answers with the planned irrigation per subzone so the
// controller needs a single round trip.
func (h *ZoneHandler) ReceiveSensorData(c *gin.Context) {
	var batch usecases.SensorBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sensor data request", "details": err.Error()})
		return
	}

	if err := h.ingest.Ingest(batch); err != nil {
		if errors.Is(err, usecases.ErrInvalidSensorData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	plans, err := h.ingest.PlannedIrrigation(batch.ControllerUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found for controller " + batch.ControllerUID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subZones": plans})
}

// GetDowntimes handles GET /api/zones/:id/downtimes
func (h *ZoneHandler) GetDowntimes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	downtimes, err := h.zones.GetDowntimes(id)
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, downtimes)
}
