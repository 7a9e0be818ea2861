package build

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/nicolasmendonca/raptor-redux/internal/model"
)

const (
	RedirectsFile = "_redirects"
	ManifestFile  = "redirects.yaml"
)

var browserRedirectTmpl = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Site.Title}}</title>
<meta name="description" content="{{.Site.Description}}">
<meta name="author" content="{{.Site.Author}}">
<link rel="canonical" href="{{.Target}}">
<meta http-equiv="refresh" content="0; url={{.Target}}">
</head>
<body>
<script>window.location.replace({{.Target}});</script>
<p>Redirecting to <a href="{{.Target}}">{{.Target}}</a>.</p>
</body>
</html>
`))

type manifest struct {
	BuildID   string               `yaml:"buildId"`
	Redirects []model.RedirectRule `yaml:"redirects"`
}

// Publisher writes a build result into OutputDir on Fs.
type Publisher struct {
	Fs        afero.Fs
	OutputDir string
	BaseURL   string
}

// Publish recreates OutputDir and writes the redirect artifacts for result.
func (p *Publisher) Publish(result *Result) error {
	if err := p.Fs.RemoveAll(p.OutputDir); err != nil {
		return fmt.Errorf("failed to remove output directory '%s': %w", p.OutputDir, err)
	}
	if err := p.Fs.MkdirAll(p.OutputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", p.OutputDir, err)
	}

	rules := result.Redirects.Rules()

	var lines bytes.Buffer
	for _, r := range rules {
		fmt.Fprintf(&lines, "%s %s %d\n", r.FromPath, p.target(r), r.StatusCode())
	}
	if err := p.write(RedirectsFile, lines.Bytes()); err != nil {
		return err
	}

	out, err := yaml.Marshal(manifest{BuildID: result.BuildID, Redirects: rules})
	if err != nil {
		return fmt.Errorf("failed to encode redirect manifest: %w", err)
	}
	if err := p.write(ManifestFile, out); err != nil {
		return err
	}

	for _, r := range rules {
		if !r.RedirectInBrowser {
			continue
		}
		var page bytes.Buffer
		data := struct {
			Site   model.SiteMetadata
			Target string
		}{Site: result.Site.Metadata, Target: p.target(r)}
		if err := browserRedirectTmpl.Execute(&page, data); err != nil {
			return fmt.Errorf("failed to render browser redirect for '%s': %w", r.FromPath, err)
		}
		if err := p.write(filepath.Join(filepath.FromSlash(r.FromPath), "index.html"), page.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) target(r model.RedirectRule) string {
	if p.BaseURL == "" {
		return r.ToPath
	}
	return strings.TrimSuffix(p.BaseURL, "/") + r.ToPath
}

func (p *Publisher) write(rel string, data []byte) error {
	dst := filepath.Join(p.OutputDir, rel)
	if err := p.Fs.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", dst, err)
	}
	if err := afero.WriteFile(p.Fs, dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", dst, err)
	}
	return nil
}
