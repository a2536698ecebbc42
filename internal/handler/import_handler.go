package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/service"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
	"github.com/noah-isme/campus-timetable-api/pkg/response"
)

// ImportHandler exposes the CSV bulk import endpoints. Each endpoint
// takes a multipart upload under the "file" field.
type ImportHandler struct {
	imports *service.ImportService
}

// NewImportHandler constructs ImportHandler.
func NewImportHandler(imports *service.ImportService) *ImportHandler {
	return &ImportHandler{imports: imports}
}

func (h *ImportHandler) run(c *gin.Context, importFn func(context.Context, io.Reader) (*dto.ImportResult, error)) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing csv upload under field 'file'"))
		return
	}
	defer file.Close()

	result, err := importFn(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Courses godoc
// @Summary Import courses from CSV
// @Tags Imports
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Router /import/courses [post]
func (h *ImportHandler) Courses(c *gin.Context) {
	h.run(c, h.imports.ImportCourses)
}

// Professors godoc
// @Summary Import professors from CSV
// @Tags Imports
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Router /import/professors [post]
func (h *ImportHandler) Professors(c *gin.Context) {
	h.run(c, h.imports.ImportProfessors)
}

// Students godoc
// @Summary Import students from CSV
// @Tags Imports
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Router /import/students [post]
func (h *ImportHandler) Students(c *gin.Context) {
	h.run(c, h.imports.ImportStudents)
}

// Rooms godoc
// @Summary Import rooms from CSV
// @Tags Imports
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Router /import/rooms [post]
func (h *ImportHandler) Rooms(c *gin.Context) {
	h.run(c, h.imports.ImportRooms)
}
