package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/nicolasmendonca/raptor-redux/internal/build"
	"github.com/nicolasmendonca/raptor-redux/internal/config"
	"github.com/nicolasmendonca/raptor-redux/internal/model"
	"github.com/nicolasmendonca/raptor-redux/internal/site"
)

func TestRunBuildProcessPublishesSiteRedirect(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := config.Config{OutputDir: "public", Port: 1313}

	result, err := runBuildProcess(context.Background(), fs, cfg, site.Config(), site.Hooks())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Redirects.Len())

	data, err := afero.ReadFile(fs, filepath.Join("public", build.RedirectsFile))
	require.NoError(t, err)
	assert.Equal(t, "/ /raptor-redux 301\n", string(data))

	page, err := afero.ReadFile(fs, filepath.Join("public", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>Raptor Redux</title>")
}

func TestRunBuildProcessFailsWhenHookFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := config.Config{OutputDir: "public", Port: 1313}
	hooks := append(site.Hooks(), site.Hooks()...)

	_, err := runBuildProcess(context.Background(), fs, cfg, site.Config(), hooks)
	require.ErrorIs(t, err, build.ErrDuplicateRedirect)

	exists, err := afero.Exists(fs, filepath.Join("public", build.RedirectsFile))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedirectHandler(t *testing.T) {
	result, err := build.NewBuilder(site.Config(), nil).Run(context.Background(), site.Hooks()...)
	require.NoError(t, err)

	fallthroughHit := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallthroughHit = true
		w.WriteHeader(http.StatusTeapot)
	})
	h := redirectHandler(func() *build.RedirectTable { return result.Redirects }, next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?ref=deck", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/raptor-redux?ref=deck", rec.Header().Get("Location"))
	assert.False(t, fallthroughHit)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/raptor-redux", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, fallthroughHit)
}

func TestRedirectHandlerTemporary(t *testing.T) {
	table := build.NewRedirectTable()
	require.NoError(t, table.CreateRedirect(context.Background(), model.RedirectRule{FromPath: "/wip", ToPath: "/raptor-redux"}))
	h := redirectHandler(func() *build.RedirectTable { return table }, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wip", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/raptor-redux", rec.Header().Get("Location"))
}

func TestRedirectHandlerWithoutTable(t *testing.T) {
	h := redirectHandler(func() *build.RedirectTable { return nil }, http.NotFoundHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfigCommandPrintsSite(t *testing.T) {
	siteConfig = site.Config()
	var out bytes.Buffer
	configCmd.SetOut(&out)
	require.NoError(t, configCmd.RunE(configCmd, nil))

	var got model.SiteConfig
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, site.Config(), got)
}

func TestViperDefaults(t *testing.T) {
	var cfg config.Config
	require.NoError(t, newViper().Unmarshal(&cfg))
	assert.Equal(t, "public", cfg.OutputDir)
	assert.Equal(t, 1313, cfg.Port)
	assert.Empty(t, cfg.BaseURL)
}
