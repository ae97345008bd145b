package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	md2tufte "github.com/alnah/go-md2tufte"
)

const shutdownTimeout = 10 * time.Second

// newServeConverter builds the converter behind the preview server.
// Tests replace it.
var newServeConverter = func(opts ...md2tufte.Option) (CLIConverter, func() error, error) {
	conv, err := md2tufte.NewConverter(opts...)
	if err != nil {
		return nil, nil, err
	}
	return conv, conv.Close, nil
}

// runServe serves the markdown files under a directory as rendered HTML,
// converting on every request so edits show up on reload.
func runServe(ctx context.Context, args []string, flags *convertFlags, env *Environment, logger *slog.Logger) error {
	cfg, err := loadSettings(flags, env)
	if err != nil {
		return err
	}

	root, err := resolveInputPath(args, cfg)
	if err != nil {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoInput, root)
	}

	css, err := readExtraCSS(flags.assets.css)
	if err != nil {
		return err
	}

	conv, closeConv, err := newServeConverter(converterOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = closeConv() }()

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           newPreviewRouter(&previewHandler{root: root, conv: conv, css: css, logger: logger}, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fmt.Fprintf(env.Stdout, "Serving %s on http://%s\n", root, cfg.Serve.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("preview server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("preview server shutdown", "error", err)
		}
		return nil
	})
	return g.Wait()
}

// newPreviewRouter mounts the health check and the document handler.
func newPreviewRouter(h *previewHandler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/*", h.ServeHTTP)
	return r
}

// requestLogger logs each request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}

// previewHandler renders markdown files, lists directories and serves
// everything else (images, stylesheets) as static files.
type previewHandler struct {
	root   string
	conv   CLIConverter
	css    string
	logger *slog.Logger
}

func (h *previewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := path.Clean("/" + chi.URLParam(r, "*"))
	full := filepath.Join(h.root, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch {
	case info.IsDir():
		h.serveIndex(w, full, rel)
	case isMarkdown(full):
		h.serveDocument(w, r, full)
	default:
		http.ServeFile(w, r, full)
	}
}

func (h *previewHandler) serveDocument(w http.ResponseWriter, r *http.Request, full string) {
	content, err := os.ReadFile(full) // #nosec G304 -- path is confined to root
	if err != nil {
		http.Error(w, "cannot read document", http.StatusInternalServerError)
		return
	}

	res, err := h.conv.Convert(r.Context(), md2tufte.Input{
		Markdown: string(content),
		CSS:      h.css,
		HTMLOnly: true,
	})
	if err != nil {
		h.logger.Warn("preview conversion failed", "file", full, "error", err)
		status := http.StatusInternalServerError
		if exitCodeFor(err) == ExitDocument {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}
	for _, d := range res.Diagnostics {
		h.logger.Warn("diagnostic", "file", full, "pass", d.Pass, "message", d.Message)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(res.HTML)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Dir}}</title></head>
<body><h1>{{.Dir}}</h1><ul>
{{- range .Entries}}
<li><a href="{{.Href}}">{{.Name}}</a></li>
{{- end}}
</ul></body></html>
`))

type indexEntry struct {
	Name string
	Href string
}

// serveIndex lists subdirectories and markdown files.
func (h *previewHandler) serveIndex(w http.ResponseWriter, full, rel string) {
	entries, err := os.ReadDir(full)
	if err != nil {
		http.Error(w, "cannot list directory", http.StatusInternalServerError)
		return
	}

	var list []indexEntry
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		switch {
		case e.IsDir():
			list = append(list, indexEntry{Name: name + "/", Href: path.Join(rel, name) + "/"})
		case isMarkdown(name):
			list = append(list, indexEntry{Name: name, Href: path.Join(rel, name)})
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct {
		Dir     string
		Entries []indexEntry
	}{Dir: rel, Entries: list}); err != nil {
		h.logger.Error("rendering index", "error", err)
	}
}
