package build

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nicolasmendonca/raptor-redux/internal/model"
)

const PhaseCreatePages = "createPages"

// NamedHook pairs a page-creation hook with the name used in logs and errors.
type NamedHook struct {
	Name string
	Fn   CreatePagesFunc
}

// HookError reports a page-creation hook that failed.
type HookError struct {
	Hook  string
	Phase string
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("hook %s failed during %s: %v", e.Hook, e.Phase, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// Result is what a finished page-creation phase hands to the publisher.
type Result struct {
	BuildID   string
	Site      model.SiteConfig
	Redirects *RedirectTable
}

type Builder struct {
	Site   model.SiteConfig
	Logger *slog.Logger
}

func NewBuilder(site model.SiteConfig, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{Site: site, Logger: logger}
}

// Run executes hooks one after another against a fresh redirect table.
// The first failing hook stops the build.
func (b *Builder) Run(ctx context.Context, hooks ...NamedHook) (*Result, error) {
	buildID := uuid.NewString()
	table := NewRedirectTable()
	logger := b.Logger.With("build_id", buildID)

	logger.Info("Starting page creation", "hooks", len(hooks), "plugins", b.Site.Plugins)

	for _, h := range hooks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("page creation cancelled before %s: %w", h.Name, err)
		}
		pc := PageContext{
			Actions: table,
			Site:    b.Site,
			BuildID: buildID,
			Logger:  logger.With("hook", h.Name),
		}
		if err := h.Fn(ctx, pc); err != nil {
			logger.Error("Hook failed", "hook", h.Name, "error", err)
			return nil, &HookError{Hook: h.Name, Phase: PhaseCreatePages, Err: err}
		}
	}

	logger.Info("Page creation finished", "redirects", table.Len())
	return &Result{BuildID: buildID, Site: b.Site, Redirects: table}, nil
}
