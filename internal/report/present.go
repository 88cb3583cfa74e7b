package report

import (
	"time"

	"github.com/eventboard/reporting-service/internal/models"
)

// ViewVersion tags the external report shape so consumers can detect
// layout changes.
const ViewVersion = "v1"

// Present shapes an aggregation result into the stable external view.
// The internal grouping types can evolve freely behind it.
func Present(result *models.ReportResult) *models.ReportView {
	groups := make([]models.ReportGroupView, 0, len(result.Groups))
	for _, g := range result.Groups {
		ids := make([]string, 0, len(g.EventIDs))
		for _, id := range g.EventIDs {
			ids = append(ids, id.String())
		}
		groups = append(groups, models.ReportGroupView{
			Key:      g.Key,
			Count:    g.Count,
			EventIDs: ids,
		})
	}

	return &models.ReportView{
		Version:     ViewVersion,
		GeneratedAt: time.Now().UTC(),
		TotalEvents: result.TotalCount(),
		Groups:      groups,
	}
}
