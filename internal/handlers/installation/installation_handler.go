// internal/handlers/installation/installation_handler.go
package installation

import (
	"net/http"
	"strconv"

	"cctv-service/internal/domain/installation"
	"cctv-service/internal/pkg/response"
	service "cctv-service/internal/service/installation"

	"github.com/gin-gonic/gin"
)

const maxPhotoSize = 10 << 20 // 10 MiB

type InstallationHandler struct {
	installService *service.InstallationService
}

func NewInstallationHandler(installService *service.InstallationService) *InstallationHandler {
	return &InstallationHandler{
		installService: installService,
	}
}

// Assign books a technician for a quote and creates the installation.
// Mounted under /quotes/:id/installation, so the path ID is the quote's.
func (h *InstallationHandler) Assign(c *gin.Context) {
	quoteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid quote ID", err)
		return
	}

	var req installation.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	ins, err := h.installService.Assign(c.Request.Context(), quoteID, &req)
	if err != nil {
		response.FromError(c, "failed to assign installation", err)
		return
	}

	response.Success(c, http.StatusCreated, "installation assigned", ins)
}

// Reassign moves a pending installation to another technician
func (h *InstallationHandler) Reassign(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	var req installation.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	ins, err := h.installService.Reassign(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to reassign installation", err)
		return
	}

	response.Success(c, http.StatusOK, "installation reassigned", ins)
}

// Start moves a pending installation to in-progress
func (h *InstallationHandler) Start(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	ins, err := h.installService.Start(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to start installation", err)
		return
	}

	response.Success(c, http.StatusOK, "installation started", ins)
}

// Complete finalizes an in-progress installation
func (h *InstallationHandler) Complete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	var req installation.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	ins, err := h.installService.Complete(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to complete installation", err)
		return
	}

	response.Success(c, http.StatusOK, "installation completed", ins)
}

// Fail marks an installation failed
func (h *InstallationHandler) Fail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	var req installation.FailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	ins, err := h.installService.Fail(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to mark installation failed", err)
		return
	}

	response.Success(c, http.StatusOK, "installation marked failed", ins)
}

// Feedback records customer satisfaction on a completed installation
func (h *InstallationHandler) Feedback(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	var req installation.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.installService.RecordFeedback(c.Request.Context(), id, &req); err != nil {
		response.FromError(c, "failed to record feedback", err)
		return
	}

	response.Success(c, http.StatusOK, "feedback recorded", nil)
}

// UploadPhoto attaches a site photo to an installation
func (h *InstallationHandler) UploadPhoto(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "photo file is required", err)
		return
	}
	if header.Size > maxPhotoSize {
		response.Error(c, http.StatusBadRequest, "photo exceeds maximum size", nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "failed to read photo", err)
		return
	}
	defer file.Close()

	url, err := h.installService.AddPhoto(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		response.FromError(c, "failed to upload photo", err)
		return
	}

	response.Success(c, http.StatusCreated, "photo uploaded", gin.H{"url": url})
}

// Get retrieves an installation by ID
func (h *InstallationHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	ins, err := h.installService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "installation not found", err)
		return
	}

	response.Success(c, http.StatusOK, "installation retrieved", ins)
}

// List retrieves installations with filters
func (h *InstallationHandler) List(c *gin.Context) {
	var filters installation.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.installService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list installations", err)
		return
	}

	response.Success(c, http.StatusOK, "installations retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
