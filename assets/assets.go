// Package assets defines the contract with the platform's asset store. The
// renderer only ever asks it to turn an opaque content identifier into a
// concrete URL plus display metadata; everything else (upload, storage,
// permissions) belongs to the hosting platform.
package assets

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"webdoc/utils/debug"
)

// Info describes a stored asset.
type Info struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MIME     string `json:"mime"`
	Download string `json:"download,omitempty"` // direct download URL when the asset allows it
}

// Store resolves opaque asset identifiers. Implementations must be safe for
// concurrent use.
type Store interface {
	// GetAssetInfo returns metadata for the identifier, or false when the
	// asset is unknown.
	GetAssetInfo(identifier string) (Info, bool)
}

// StaticStore is a fixed identifier-to-info mapping. Used by the CLI (asset
// manifests loaded from disk) and in tests.
type StaticStore map[string]Info

func (s StaticStore) GetAssetInfo(identifier string) (Info, bool) {
	info, ok := s[identifier]
	return info, ok
}

// String returns a readable dump of the store in natural identifier order.
// It exists solely for manual inspection during debugging.
func (s StaticStore) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Assets: %d", len(s))
	keys := slices.Collect(maps.Keys(s))
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		info := s[k]
		tw.Line(1, "Asset[%q] url[%q] mime[%q] size[%d]", k, info.URL, info.MIME, info.Size)
	}
	return tw.String()
}

// LoadManifest reads a JSON asset manifest mapping identifiers to Info.
func LoadManifest(path string) (StaticStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read asset manifest: %w", err)
	}
	var store StaticStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("unable to decode asset manifest %q: %w", path, err)
	}
	return store, nil
}
