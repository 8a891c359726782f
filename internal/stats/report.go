package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/dikte/internal/model"
	"github.com/verte-zerg/dikte/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Practices []model.PracticeAggregate
}

// BuildReport loads and trims practices for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	practices, err := st.ListPractices(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(practices) > cfg.Last {
		practices = practices[len(practices)-cfg.Last:]
	}
	return Report{Practices: practices}, nil
}

// Render writes the summary, curves, and practice table.
func (r Report) Render(w io.Writer, window, width int) error {
	if err := RenderSummary(w, r.Practices); err != nil {
		return err
	}
	if err := RenderCurves(w, r.Practices, window, width); err != nil {
		return err
	}
	return RenderPracticeTable(w, r.Practices)
}
