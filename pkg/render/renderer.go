// Package render defines the renderer contract, the registry the report
// orchestrator selects renderers from, and the explicit layout context value
// renderers thread through their drawing routines.
package render

import (
	"context"

	"github.com/goliatone/go-reportgen/pkg/model"
)

// Renderer converts a report document into a byte artifact (PDF for the
// built-in renderers).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc model.Document, options RenderOptions) ([]byte, error)
}
