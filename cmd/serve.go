// cmd/serve.go
package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nicolasmendonca/raptor-redux/internal/build"
)

var serverPort int // For the --port flag

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Builds the site and serves it locally",
	Long: `The serve command performs an initial build, then serves the output
directory over HTTP. Registered redirects are answered with 301 or 302 before
the file server is consulted. Changes to the config file trigger a rebuild.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			appConfig.Port = serverPort
		}

		var table atomic.Pointer[build.RedirectTable]
		fs := afero.NewOsFs()

		log.Println("Performing initial build...")
		result, err := runBuildProcess(cmd.Context(), fs, appConfig, siteConfig, siteHooks)
		if err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}
		table.Store(result.Redirects)

		if configFileUsed != "" {
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("failed to create file watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory: editors often replace the file on save.
			if err := watcher.Add(filepath.Dir(configFileUsed)); err != nil {
				return fmt.Errorf("failed to watch %s: %w", configFileUsed, err)
			}
			go watchConfig(cmd, watcher, &table)
		} else {
			log.Println("No config file in use, not watching for changes.")
		}

		outputDir := appConfig.OutputDir
		serverAddr := fmt.Sprintf(":%d", appConfig.Port)
		log.Printf("Serving site from '%s' on http://localhost%s", outputDir, serverAddr)
		log.Println("Press Ctrl+C to stop the server.")

		handler := redirectHandler(table.Load, noCache(outputDir, http.FileServer(http.Dir(outputDir))))
		if err := http.ListenAndServe(serverAddr, handler); err != nil {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	},
}

func watchConfig(cmd *cobra.Command, watcher *fsnotify.Watcher, table *atomic.Pointer[build.RedirectTable]) {
	var buildTimer *time.Timer
	debounceDuration := 500 * time.Millisecond
	target := filepath.Clean(configFileUsed)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)) {
				continue
			}
			log.Printf("Change detected: %s (%s)", event.Name, event.Op.String())

			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounceDuration, func() {
				log.Println("Rebuilding site due to config change...")
				if err := initializeConfig(cmd); err != nil {
					log.Printf("Error reloading config, keeping previous build: %v", err)
					return
				}
				result, err := runBuildProcess(cmd.Context(), afero.NewOsFs(), appConfig, siteConfig, siteHooks)
				if err != nil {
					log.Printf("Error during rebuild: %v", err)
					return
				}
				table.Store(result.Redirects)
				log.Println("Site rebuilt successfully.")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// redirectHandler answers paths with a registered redirect and passes
// everything else to next.
func redirectHandler(table func() *build.RedirectTable, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t := table(); t != nil {
			if rule, ok := t.Lookup(r.URL.Path); ok {
				target := rule.ToPath
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, target, rule.StatusCode())
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// noCache disables caching and directory listings for the dev server.
func noCache(dir string, fs http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			_, err := os.Stat(filepath.Join(dir, r.URL.Path, "index.html"))
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		fs.ServeHTTP(w, r)
	})
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
