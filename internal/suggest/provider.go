// Package suggest matches free-text work descriptions to projects. It is
// an optional convenience on top of the tracking core; nothing here is
// required for logging or aggregation.
package suggest

import (
	"context"

	"github.com/VisionInno/tidsrapportering/internal/store"
)

// Match is the suggested project for a description.
type Match struct {
	ProjectID   string  `json:"project_id" jsonschema_description:"ID of the best matching project, empty when nothing matches"`
	ProjectName string  `json:"project_name" jsonschema_description:"Name of the matched project"`
	Confidence  float64 `json:"confidence" jsonschema_description:"Match confidence between 0 and 1"`
	Reason      string  `json:"reason" jsonschema_description:"One short sentence explaining the match"`
}

type Provider interface {
	MatchProject(ctx context.Context, description string, projects []store.Project) (*Match, error)
}
