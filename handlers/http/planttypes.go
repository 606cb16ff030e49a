package httpHandler

import (
	"errors"
	"net/http"

	"irrigation-server/entities"
	"irrigation-server/usecases"

	"github.com/gin-gonic/gin"
)

type PlantTypeHandler struct {
	reference *usecases.ReferenceUseCase
}

func NewPlantTypeHandler(reference *usecases.ReferenceUseCase) *PlantTypeHandler {
	return &PlantTypeHandler{reference: reference}
}

// List handles GET /api/plant-types
func (h *PlantTypeHandler) List(c *gin.Context) {
	pts, err := h.reference.GetAllPlantTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve plant types"})
		return
	}
	c.JSON(http.StatusOK, pts)
}

// Get handles GET /api/plant-types/:id
func (h *PlantTypeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pt, err := h.reference.GetPlantType(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plant type not found"})
		return
	}
	c.JSON(http.StatusOK, pt)
}

// Create handles POST /api/plant-types
func (h *PlantTypeHandler) Create(c *gin.Context) {
	var pt entities.PlantType
	if err := c.ShouldBindJSON(&pt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.reference.CreatePlantType(&pt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pt)
}

// Update handles PUT /api/plant-types/:id
func (h *PlantTypeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var incoming entities.PlantType
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	pt, err := h.reference.UpdatePlantType(id, &incoming)
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plant type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pt)
}

// Delete handles DELETE /api/plant-types/:id
func (h *PlantTypeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.reference.DeletePlantType(id); err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plant type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
