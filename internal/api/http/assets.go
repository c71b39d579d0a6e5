package http

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nlpds/nlpds-server/internal/storage"
)

// MountAssets wires the question-image routes onto r. Keys are relative
// paths as referenced by the bank's images arrays.
func MountAssets(r chi.Router, store storage.AssetStore) {
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(req, "*"), "/")
		rc, err := store.Get(key)
		if err != nil {
			writeError(w, http.StatusNotFound, "asset not found")
			return
		}
		defer rc.Close()
		if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		_, _ = io.Copy(w, rc)
	})

	r.Post("/*", func(w http.ResponseWriter, req *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(req, "*"), "/")
		canonical, err := store.Put(key, req.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"key": canonical})
	})
}
