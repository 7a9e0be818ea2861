package model

// SiteMetadata holds the descriptive fields a theme reads for the header,
// attribution and SEO tags.
type SiteMetadata struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
}

// SiteConfig is the site descriptor read once at build start.
// Plugins are theme identifiers in load order; later themes layer over earlier ones.
type SiteConfig struct {
	Metadata SiteMetadata `yaml:"siteMetadata"`
	Plugins  []string     `yaml:"plugins"`
}

// RedirectRule forwards requests for FromPath to ToPath.
type RedirectRule struct {
	FromPath          string `yaml:"fromPath"`
	ToPath            string `yaml:"toPath"`
	IsPermanent       bool   `yaml:"isPermanent"`
	RedirectInBrowser bool   `yaml:"redirectInBrowser"`
}

// StatusCode is the HTTP status a server should answer FromPath with.
func (r RedirectRule) StatusCode() int {
	if r.IsPermanent {
		return 301
	}
	return 302
}
