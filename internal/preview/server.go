// Package preview serves the assembled site locally with live reload. Serve
// passes never write to the docs tree or any staging directory: native and
// extra files alike are streamed from their true locations at request time.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/extrafiles/internal/build"
	"git.home.luguber.info/inful/extrafiles/internal/config"
	siterrors "git.home.luguber.info/inful/extrafiles/internal/errors"
	"git.home.luguber.info/inful/extrafiles/internal/logfields"
	"git.home.luguber.info/inful/extrafiles/internal/metrics"
	"git.home.luguber.info/inful/extrafiles/internal/site"
	"git.home.luguber.info/inful/extrafiles/internal/util/sets"
)

const rebuildDebounce = 300 * time.Millisecond

// Server is the local preview server: HTTP frontend over the in-memory
// collection, filesystem watcher, and debounced rebuild loop.
type Server struct {
	cfg            *config.Config
	gen            *build.Generator
	hub            *LiveReloadHub
	recorder       metrics.Recorder
	metricsHandler http.Handler

	mu         sync.RWMutex
	collection *site.Collection
	lastError  error

	watcher *fsnotify.Watcher
	watched sets.Set[string]
}

// NewServer creates a preview server. metricsHandler may be nil when metrics
// are disabled.
func NewServer(cfg *config.Config, gen *build.Generator, rec metrics.Recorder, metricsHandler http.Handler) *Server {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Server{
		cfg:            cfg,
		gen:            gen,
		hub:            NewLiveReloadHub(rec),
		recorder:       rec,
		metricsHandler: metricsHandler,
		watched:        sets.New[string](),
	}
}

// Run assembles the site, starts watching, and serves until ctx is done.
// An assembly failure at startup is fatal; rebuild failures afterwards keep
// the previous collection and are reported on served pages.
func (s *Server) Run(ctx context.Context) error {
	collection, pctx, err := s.gen.Assemble(ctx, site.ModeServe)
	if err != nil {
		return err
	}
	s.setCollection(collection, nil)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return siterrors.Wrap(err, siterrors.CategoryServe, siterrors.SeverityFatal, "start filesystem watcher")
	}
	s.watcher = watcher
	defer func() { _ = watcher.Close() }()

	if err := s.addDirsRecursive(s.cfg.AbsDocsDir()); err != nil {
		return err
	}
	if err := s.gen.RegisterWatches(pctx, s.watchPath); err != nil {
		return err
	}

	mux := http.NewServeMux()
	if s.cfg.Preview.LiveReloadEnabled() {
		mux.Handle("/livereload", s.hub)
	}
	if s.metricsHandler != nil {
		mux.Handle("/metrics", s.metricsHandler)
	}
	mux.HandleFunc("/", s.handleDoc)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Preview.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	rebuildReq := make(chan struct{}, 1)
	go s.watchLoop(ctx, rebuildReq)
	go s.rebuildLoop(ctx, rebuildReq)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening",
			logfields.Port(s.cfg.Preview.Port),
			slog.String("docs_url", fmt.Sprintf("http://localhost:%d", s.cfg.Preview.Port)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return siterrors.Wrap(err, siterrors.CategoryServe, siterrors.SeverityFatal, "preview server")
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// watchPath registers one absolute source path with the watcher, deduplicating
// repeat registrations across rebuild passes.
func (s *Server) watchPath(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watched.Has(path) {
		return nil
	}
	if err := s.watcher.Add(path); err != nil {
		return err
	}
	s.watched.Add(path)
	s.recorder.SetWatchedPaths(len(s.watched))
	return nil
}

// addDirsRecursive watches a directory tree; new subdirectories are picked up
// by the watch loop when their create events arrive.
func (s *Server) addDirsRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != root {
			return filepath.SkipDir
		}
		return s.watchPath(p)
	})
}

func (s *Server) watchLoop(ctx context.Context, rebuildReq chan struct{}) {
	var mu sync.Mutex
	var timer *time.Timer
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(rebuildDebounce, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					if err := s.addDirsRecursive(event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				trigger()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

// rebuildLoop re-enters the resolution pipeline for each debounced change.
// Rebuilds are in-memory only; a failure keeps the last good collection.
func (s *Server) rebuildLoop(ctx context.Context, rebuildReq chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			collection, pctx, err := s.gen.Assemble(ctx, site.ModeServe)
			if err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
				s.setCollection(nil, err)
				continue
			}
			if err := s.gen.RegisterWatches(pctx, s.watchPath); err != nil {
				slog.Warn("Watch re-registration failed", logfields.Error(err))
			}
			s.setCollection(collection, nil)
			s.recorder.IncRebuild()
			s.hub.Broadcast(pctx.BuildID)
			slog.Info("Rebuilt site", logfields.Count(collection.Len()), logfields.BuildID(pctx.BuildID))
		}
	}
}

func (s *Server) setCollection(c *site.Collection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c != nil {
		s.collection = c
	}
	s.lastError = err
}

func (s *Server) snapshot() (*site.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection, s.lastError
}

// handleDoc serves one collection file. Native markdown is rendered to HTML
// for the preview; everything else, extra files included, is streamed as-is
// from its true source path.
func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	collection, lastErr := s.snapshot()
	if collection == nil {
		http.Error(w, "site not built yet", http.StatusServiceUnavailable)
		return
	}

	f, ok := lookup(collection, r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if !f.Extra && strings.HasSuffix(f.Dest, ".md") {
		body, err := readAll(f)
		if err != nil {
			slog.Error("Failed to read page", logfields.Source(f.SourcePath), logfields.Error(err))
			http.Error(w, "failed to read page", http.StatusInternalServerError)
			return
		}
		page, err := renderMarkdownPage(s.cfg.Preview.Title, body, s.cfg.Preview.LiveReloadEnabled())
		if err != nil {
			slog.Error("Failed to render page", logfields.Source(f.SourcePath), logfields.Error(err))
			http.Error(w, "failed to render page", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if lastErr != nil {
			w.Header().Set("X-Build-Error", "true")
		}
		_, _ = w.Write(page)
		return
	}

	http.ServeFile(w, r, f.SourcePath)
}

// lookup maps a request path onto a collection destination. Directory
// requests fall back to index.md, then README.md.
func lookup(c *site.Collection, urlPath string) (*site.File, bool) {
	dest := strings.TrimPrefix(path.Clean(urlPath), "/")
	if dest == "" || dest == "." {
		dest = ""
	}
	candidates := []string{dest}
	if dest == "" {
		candidates = []string{"index.md", "README.md"}
	} else {
		candidates = append(candidates, path.Join(dest, "index.md"), path.Join(dest, "README.md"))
	}
	for _, cand := range candidates {
		if f, ok := c.Get(cand); ok {
			return f, true
		}
	}
	return nil, false
}

func readAll(f *site.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
