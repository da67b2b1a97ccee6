// internal/handlers/catalog/catalog_handler.go
package catalog

import (
	"net/http"

	"cctv-service/internal/pkg/response"
	service "cctv-service/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListLocations returns the service areas with their pricing parameters
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locations, err := h.catalogService.ListLocations(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list locations", err)
		return
	}

	response.Success(c, http.StatusOK, "locations retrieved", locations)
}

// ListCameraSpecs returns the camera models offered
func (h *CatalogHandler) ListCameraSpecs(c *gin.Context) {
	specs, err := h.catalogService.ListCameraSpecs(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list camera specifications", err)
		return
	}

	response.Success(c, http.StatusOK, "camera specifications retrieved", specs)
}

// ListDifficulties returns the installation difficulty tiers
func (h *CatalogHandler) ListDifficulties(c *gin.Context) {
	difficulties, err := h.catalogService.ListDifficulties(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list difficulties", err)
		return
	}

	response.Success(c, http.StatusOK, "difficulties retrieved", difficulties)
}

// CalculatePrice runs the pricing engine for the public estimator
func (h *CatalogHandler) CalculatePrice(c *gin.Context) {
	var req service.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	breakdown, err := h.catalogService.CalculatePrice(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to calculate price", err)
		return
	}

	response.Success(c, http.StatusOK, "price calculated", breakdown)
}
