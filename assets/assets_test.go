package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStaticStore(t *testing.T) {
	store := StaticStore{
		"docs/report.pdf": {URL: "https://assets.example.org/docs/report.pdf", Name: "report.pdf", Size: 1536, MIME: "application/pdf"},
	}

	info, ok := store.GetAssetInfo("docs/report.pdf")
	if !ok {
		t.Fatal("GetAssetInfo() = false for known identifier")
	}
	if info.Name != "report.pdf" || info.Size != 1536 {
		t.Errorf("GetAssetInfo() = %+v", info)
	}
	if _, ok := store.GetAssetInfo("missing"); ok {
		t.Error("GetAssetInfo() = true for unknown identifier")
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.json")
	manifest := `{
		"docs/report.pdf": {
			"url": "https://assets.example.org/docs/report.pdf",
			"name": "report.pdf",
			"size": 1536,
			"mime": "application/pdf",
			"download": "https://assets.example.org/docs/report.pdf?download=1"
		},
		"img/photo.jpg": {
			"url": "https://assets.example.org/img/photo.jpg",
			"name": "photo.jpg",
			"size": 2048,
			"mime": "image/jpeg"
		}
	}`
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if len(store) != 2 {
		t.Fatalf("LoadManifest() loaded %d assets, want 2", len(store))
	}
	info, ok := store.GetAssetInfo("docs/report.pdf")
	if !ok {
		t.Fatal("manifest entry not resolvable")
	}
	if info.Download != "https://assets.example.org/docs/report.pdf?download=1" {
		t.Errorf("Download = %q", info.Download)
	}
}

func TestLoadManifest_Errors(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("LoadManifest() succeeded for a missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(bad); err == nil {
		t.Error("LoadManifest() succeeded for malformed JSON")
	}
}

func TestStaticStore_String(t *testing.T) {
	store := StaticStore{
		"img/photo10.jpg": {URL: "u10"},
		"img/photo2.jpg":  {URL: "u2"},
	}
	out := store.String()
	if !strings.Contains(out, "Assets: 2") {
		t.Errorf("String() = %q", out)
	}
	// natural ordering puts photo2 before photo10
	if strings.Index(out, "photo2") > strings.Index(out, "photo10.") {
		t.Errorf("String() not naturally ordered:\n%s", out)
	}
}
