package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	roidomain "github.com/markproof/portal/internal/roi/domain"
)

// EstimateROI computes the five ROI metrics, the five-year projection, and
// the qualitative band for the submitted inputs. Inputs are coerced, never
// rejected: garbage numbers arrive as zero.
func (s *Server) EstimateROI(c *gin.Context) {
	var req roidomain.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	estimate := s.roiSvc.Estimate(c.Request.Context(), req.Params())
	c.JSON(http.StatusOK, estimate)
}

// ListROIPresets returns the configured calculator scenarios.
func (s *Server) ListROIPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": s.roiSvc.Presets(c.Request.Context())})
}

type roiReportRequest struct {
	roidomain.EstimateRequest
	Scenario string `json:"scenario"`
}

// DownloadROIReport renders the estimate as a PDF. A named scenario preset
// takes precedence over inline parameters.
func (s *Server) DownloadROIReport(c *gin.Context) {
	var req roiReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	params := req.Params()
	scenario := strings.TrimSpace(req.Scenario)
	if scenario != "" {
		preset, err := s.roiSvc.PresetFor(c.Request.Context(), scenario)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		params = preset.Params
	}

	report, err := s.roiSvc.Report(c.Request.Context(), params)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := io.ReadAll(report)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordROIReport(c.Request.Context(), scenario)
	}

	c.Header("Content-Disposition", `attachment; filename="markproof-roi-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
