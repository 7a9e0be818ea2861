// Package build runs the page-creation phase of a site build and publishes
// what the hooks registered.
package build

import (
	"context"
	"log/slog"

	"github.com/nicolasmendonca/raptor-redux/internal/model"
)

// Actions is the capability set handed to page-creation hooks.
type Actions interface {
	// CreateRedirect adds rule to the build's redirect table.
	CreateRedirect(ctx context.Context, rule model.RedirectRule) error
}

// PageContext is passed to every page-creation hook.
type PageContext struct {
	Actions Actions
	Site    model.SiteConfig
	BuildID string
	Logger  *slog.Logger
}

// CreatePagesFunc is a page-creation hook. The build waits for it to return
// before moving on to the next hook.
type CreatePagesFunc func(ctx context.Context, pc PageContext) error
