// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ManuGH/dagskra/internal/log"
	"github.com/ManuGH/dagskra/internal/metrics"
)

// Static denial reasons, used as metric labels.
const (
	deniedMethod    = "method"
	deniedTraversal = "traversal"
	deniedDirectory = "directory"
	deniedNotFound  = "not_found"
	deniedInternal  = "internal"
)

// staticHandler serves files from the configured assets directory with
// checks against path traversal, symlink escapes and directory listing.
// The directory is read from the current config on every request.
func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.WithComponentFromContext(r.Context(), "static")
		deny := func(reason, msg string, code int) {
			metrics.IncStaticDenied(reason)
			logger.Warn().
				Str(log.FieldEvent, "static.denied").
				Str(log.FieldPath, r.URL.Path).
				Str("reason", reason).
				Msg(msg)
			http.Error(w, http.StatusText(code), code)
		}

		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			deny(deniedMethod, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		path := r.URL.Path
		if isPathTraversal(path) {
			deny(deniedTraversal, "detected traversal sequence", http.StatusForbidden)
			return
		}
		if path == "" || strings.HasSuffix(path, "/") {
			deny(deniedDirectory, "directory listing forbidden", http.StatusForbidden)
			return
		}

		absDir, err := filepath.Abs(s.cfg.Get().Server.AssetsDir)
		if err != nil {
			deny(deniedInternal, "could not resolve assets dir", http.StatusInternalServerError)
			return
		}
		realDir, err := filepath.EvalSymlinks(absDir)
		if err != nil {
			if os.IsNotExist(err) {
				deny(deniedNotFound, "assets dir missing", http.StatusNotFound)
				return
			}
			deny(deniedInternal, "could not evaluate assets dir", http.StatusInternalServerError)
			return
		}

		realPath, err := filepath.EvalSymlinks(filepath.Join(realDir, filepath.FromSlash(path)))
		if err != nil {
			if os.IsNotExist(err) {
				deny(deniedNotFound, "file not found", http.StatusNotFound)
				return
			}
			deny(deniedInternal, "could not evaluate path", http.StatusInternalServerError)
			return
		}

		// filepath.Rel guards against symlinks that resolve outside the assets dir.
		rel, err := filepath.Rel(realDir, realPath)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
			deny(deniedTraversal, "path escapes assets dir", http.StatusForbidden)
			return
		}

		// #nosec G304 -- realPath is validated to reside inside the assets directory
		f, err := os.Open(realPath)
		if err != nil {
			deny(deniedInternal, "could not open file", http.StatusInternalServerError)
			return
		}
		defer func() { _ = f.Close() }()

		info, err := f.Stat()
		if err != nil {
			deny(deniedInternal, "could not stat file", http.StatusInternalServerError)
			return
		}
		if info.IsDir() {
			deny(deniedDirectory, "resolved path is a directory", http.StatusForbidden)
			return
		}

		etag := fmt.Sprintf(`W/"%x-%x"`, info.ModTime().UnixNano(), info.Size())
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=3600")

		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		logger.Debug().Str(log.FieldEvent, "static.served").Str(log.FieldPath, path).Msg("serving file")
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	})
}

// isPathTraversal performs robust checks against path traversal attempts.
// It decodes the input multiple times to catch double-encoding, applies
// Unicode normalization, and searches for dangerous sequences including NULs.
func isPathTraversal(p string) bool {
	decoded := p
	for i := 0; i < 3; i++ {
		prev := decoded
		if d, err := url.PathUnescape(decoded); err == nil {
			decoded = d
		} else if d2, err2 := url.QueryUnescape(decoded); err2 == nil {
			decoded = d2
		}
		if decoded == prev {
			break
		}
	}

	lower := strings.ToLower(decoded)
	for _, pat := range []string{"..", "%00", "%c0%ae", "%e0%80%ae", "\\"} {
		if strings.Contains(lower, pat) {
			return true
		}
	}
	if strings.IndexByte(decoded, 0x00) >= 0 {
		return true
	}

	// Fullwidth and compatibility dots fold to ".." under NFKC.
	return strings.Contains(norm.NFKC.String(decoded), "..")
}
