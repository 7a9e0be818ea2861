package site

import (
	"context"

	"github.com/nicolasmendonca/raptor-redux/internal/build"
	"github.com/nicolasmendonca/raptor-redux/internal/model"
)

const SlidesPath = "/raptor-redux"

// CreatePages sends visitors of the root path to the slides.
// It registers the rule on every call; deduplication is left to the table.
func CreatePages(ctx context.Context, pc build.PageContext) error {
	return pc.Actions.CreateRedirect(ctx, model.RedirectRule{
		FromPath:          "/",
		ToPath:            SlidesPath,
		IsPermanent:       true,
		RedirectInBrowser: true,
	})
}

// Hooks lists the page-creation hooks of the site in the order they run.
func Hooks() []build.NamedHook {
	return []build.NamedHook{{Name: "site.CreatePages", Fn: CreatePages}}
}
