package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-timetable-api/internal/service"
	"github.com/noah-isme/campus-timetable-api/pkg/response"
)

// ExportHandler exposes the CSV and PDF download endpoints.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

func attach(c *gin.Context, payload []byte, filename, contentType string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}

// TimetableCSV godoc
// @Summary Download a timetable as CSV
// @Tags Exports
// @Produce text/csv
// @Param id path string true "Timetable ID"
// @Param section query string false "Filter by section"
// @Success 200 {file} file
// @Router /timetables/{id}/export/csv [get]
func (h *ExportHandler) TimetableCSV(c *gin.Context) {
	payload, filename, err := h.exports.TimetableCSV(c.Request.Context(), c.Param("id"), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	attach(c, payload, filename, "text/csv")
}

// TimetablePDF godoc
// @Summary Download a timetable as a PDF grid
// @Tags Exports
// @Produce application/pdf
// @Param id path string true "Timetable ID"
// @Param section query string false "Filter by section"
// @Success 200 {file} file
// @Router /timetables/{id}/export/pdf [get]
func (h *ExportHandler) TimetablePDF(c *gin.Context) {
	payload, filename, err := h.exports.TimetablePDF(c.Request.Context(), c.Param("id"), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	attach(c, payload, filename, "application/pdf")
}

// SeatingPDF godoc
// @Summary Download an exam's seating chart as PDF
// @Tags Exports
// @Produce application/pdf
// @Param id path string true "Exam ID"
// @Success 200 {file} file
// @Router /exams/{id}/seating/export/pdf [get]
func (h *ExportHandler) SeatingPDF(c *gin.Context) {
	payload, filename, err := h.exports.SeatingPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	attach(c, payload, filename, "application/pdf")
}
