// Package site declares the Raptor Redux site: its metadata, the themes it
// loads and the pages it registers at build time.
package site

import "github.com/nicolasmendonca/raptor-redux/internal/model"

const (
	PluginThemeBlog  = "gatsby-theme-blog"
	PluginThemeWaves = "gatsby-theme-waves"
)

// Config returns the site descriptor. Each call builds a new value.
func Config() model.SiteConfig {
	return model.SiteConfig{
		Metadata: model.SiteMetadata{
			// Site title and SEO.
			Title: "Raptor Redux",
			// Alt text for the author avatar.
			Author: "Nicolas Mendonca",
			// SEO.
			Description: "Slides for the Raptor-Redux flow",
		},
		Plugins: []string{
			PluginThemeBlog,
			PluginThemeWaves,
		},
	}
}
