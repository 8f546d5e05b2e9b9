// Package static serves a build output directory with single-page-app
// fallback: any path that is not an existing file receives the root
// index.html so client-side routing can take over.
package static

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// IndexFile is the directory index and the fallback document.
const IndexFile = "index.html"

const (
	htmlType    = "text/html; charset=utf-8"
	defaultType = "application/octet-stream"
)

var contentTypes = map[string]string{
	".html": htmlType,
	".js":   "text/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".ico":  "image/x-icon",
	".json": "application/json; charset=utf-8",
	".map":  defaultType,
}

// ContentType returns the content type for a file name from the fixed
// extension table. Unknown extensions are served as octet streams.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return defaultType
}

// Server streams files below Root. It sends no caching headers, does not
// compress and ignores Range requests.
type Server struct {
	root   string
	logger *slog.Logger
}

// New creates a Server for root.
func New(root string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{root: root, logger: logger}
}

// Root returns the served directory.
func (s *Server) Root() string { return s.root }

// Resolve maps a decoded URL path to a file below Root. The path is cleaned
// as a rooted path first, so ".." segments can never climb above Root. A
// trailing slash selects the directory index.
func (s *Server) Resolve(urlPath string) string {
	clean := path.Clean("/" + urlPath)
	if strings.HasSuffix(urlPath, "/") {
		clean = path.Join(clean, IndexFile)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	name := s.Resolve(r.URL.Path)
	if s.serveFile(w, r, name, ContentType(name)) {
		return
	}
	if s.serveFile(w, r, filepath.Join(s.root, IndexFile), htmlType) {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if r.Method != http.MethodHead {
		_, _ = io.WriteString(w, "Not Found")
	}
}

// serveFile writes name if it is a readable regular file and reports
// whether it did.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, name, contentType string) bool {
	f, err := os.Open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("open static file", "path", name, "error", err)
		}
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return true
	}
	if _, err := io.Copy(w, f); err != nil {
		s.logger.Warn("stream static file", "path", name, "error", err)
	}
	return true
}
