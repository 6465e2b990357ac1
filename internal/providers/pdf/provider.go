package pdf

import (
	"context"
	"io"

	roidomain "github.com/markproof/portal/internal/roi/domain"
)

// ReportData is everything the ROI report renders: the inputs, the five
// derived metrics, the projection lines, and the canned recommendation.
type ReportData struct {
	GeneratedAt    string
	Params         roidomain.Params
	Result         roidomain.Result
	Projection     []roidomain.ProjectionYear
	Band           string
	Recommendation string
}

type Provider interface {
	GenerateROIReport(ctx context.Context, data ReportData) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateROIReport(ctx context.Context, data ReportData) (io.Reader, error) {
	return nil, nil
}
