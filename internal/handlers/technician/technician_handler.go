// internal/handlers/technician/technician_handler.go
package technician

import (
	"net/http"
	"strconv"

	"cctv-service/internal/domain/technician"
	"cctv-service/internal/pkg/response"
	service "cctv-service/internal/service/technician"

	"github.com/gin-gonic/gin"
)

type TechnicianHandler struct {
	techService *service.TechnicianService
}

func NewTechnicianHandler(techService *service.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{
		techService: techService,
	}
}

// Create registers a new field technician
func (h *TechnicianHandler) Create(c *gin.Context) {
	var req technician.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	t, err := h.techService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create technician", err)
		return
	}

	response.Success(c, http.StatusCreated, "technician created", t)
}

// Get retrieves a technician by ID
func (h *TechnicianHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid technician ID", err)
		return
	}

	t, err := h.techService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "technician not found", err)
		return
	}

	response.Success(c, http.StatusOK, "technician retrieved", t)
}

// Update applies a partial update to a technician
func (h *TechnicianHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid technician ID", err)
		return
	}

	var req technician.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	t, err := h.techService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update technician", err)
		return
	}

	response.Success(c, http.StatusOK, "technician updated", t)
}

// List retrieves technicians with filters
func (h *TechnicianHandler) List(c *gin.Context) {
	var filters technician.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.techService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list technicians", err)
		return
	}

	response.Success(c, http.StatusOK, "technicians retrieved", result)
}

// Profile returns a technician with their job history aggregates
func (h *TechnicianHandler) Profile(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid technician ID", err)
		return
	}

	profile, err := h.techService.Profile(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "technician not found", err)
		return
	}

	response.Success(c, http.StatusOK, "technician profile retrieved", profile)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
