package httpHandler

import (
	"errors"
	"net/http"

	"irrigation-server/entities"
	"irrigation-server/usecases"

	"github.com/gin-gonic/gin"
)

type SoilTypeHandler struct {
	reference *usecases.ReferenceUseCase
}

func NewSoilTypeHandler(reference *usecases.ReferenceUseCase) *SoilTypeHandler {
	return &SoilTypeHandler{reference: reference}
}

// List handles GET /api/soil-types
func (h *SoilTypeHandler) List(c *gin.Context) {
	sts, err := h.reference.GetAllSoilTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve soil types"})
		return
	}
	c.JSON(http.StatusOK, sts)
}

// Get handles GET /api/soil-types/:id
func (h *SoilTypeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	st, err := h.reference.GetSoilType(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Soil type not found"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// Create handles POST /api/soil-types
func (h *SoilTypeHandler) Create(c *gin.Context) {
	var st entities.SoilType
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.reference.CreateSoilType(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, st)
}

// Update handles PUT /api/soil-types/:id
func (h *SoilTypeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var incoming entities.SoilType
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	st, err := h.reference.UpdateSoilType(id, &incoming)
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Soil type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// Delete handles DELETE /api/soil-types/:id
func (h *SoilTypeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.reference.DeleteSoilType(id); err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Soil type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
