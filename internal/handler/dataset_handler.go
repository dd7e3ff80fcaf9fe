package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chainsight/internal/domain"
	"chainsight/internal/service"
)

// DatasetHandler handles spreadsheet upload endpoints.
type DatasetHandler struct {
	datasetService service.DatasetService
}

// NewDatasetHandler creates a new DatasetHandler.
func NewDatasetHandler(datasetService service.DatasetService) *DatasetHandler {
	return &DatasetHandler{datasetService: datasetService}
}

// Upload handles POST /api/v1/datasets. Accepts a multipart spreadsheet
// (xlsx, csv), decodes it and classifies the data type from its
// headers. An optional "type" form field overrides classification.
func (h *DatasetHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	input := service.UploadInput{
		FileName:     header.Filename,
		Size:         header.Size,
		File:         file,
		TypeOverride: domain.DataType(c.PostForm("type")),
	}

	dataset, err := h.datasetService.Upload(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, dataset)
}
