package assets

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"promptbox/internal/models"
)

// ManifestPath is where the UI shell fetches the cache manifest.
const ManifestPath = "/asset-manifest.json"

// ManifestData holds the raw JSON of the offline cache manifest.
//
//go:embed manifest.json
var ManifestData []byte

// Manifest decodes the embedded manifest.
func Manifest() (*models.AssetManifest, error) {
	var m models.AssetManifest
	if err := json.Unmarshal(ManifestData, &m); err != nil {
		return nil, fmt.Errorf("parse asset manifest: %w", err)
	}
	if m.CacheName == "" {
		return nil, fmt.Errorf("asset manifest: cacheName is required")
	}
	return &m, nil
}

// StaleCaches returns the cache names that should be purged on activation:
// every name except current. Order is preserved.
func StaleCaches(current string, names []string) []string {
	stale := make([]string, 0, len(names))
	for _, name := range names {
		if name != current && !slices.Contains(stale, name) {
			stale = append(stale, name)
		}
	}
	return stale
}

// Handler serves the manifest at ManifestPath and passes every other request
// to next, which may be nil.
func Handler(next http.Handler) (http.Handler, error) {
	m, err := Manifest()
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode asset manifest: %w", err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ManifestPath {
			if next == nil {
				http.NotFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(body)
	}), nil
}
