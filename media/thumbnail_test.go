package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"webdoc/common"
)

func TestThumbnail_YouTube(t *testing.T) {
	f := NewThumbnailFetcher(nil, zaptest.NewLogger(t))

	got, err := f.Thumbnail(context.Background(), common.EmbedProviderYoutube, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	want := "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"
	if got != want {
		t.Errorf("Thumbnail() = %q, want %q", got, want)
	}

	if _, err := f.Thumbnail(context.Background(), common.EmbedProviderYoutube, "https://www.youtube.com/"); err == nil {
		t.Error("Thumbnail() succeeded for URL without a video id")
	}
}

func TestThumbnail_Vimeo(t *testing.T) {
	const src = "https://vimeo.com/76979871"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != src {
			t.Errorf("oEmbed url param = %q, want %q", got, src)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"type":"video","thumbnail_url":"https://i.vimeocdn.com/video/452001751_640.jpg"}`))
	}))
	defer srv.Close()

	f := NewThumbnailFetcher(srv.Client(), zaptest.NewLogger(t))
	f.OEmbedURL = srv.URL

	got, err := f.Thumbnail(context.Background(), common.EmbedProviderVimeo, src)
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	if want := "https://i.vimeocdn.com/video/452001751_640.jpg"; got != want {
		t.Errorf("Thumbnail() = %q, want %q", got, want)
	}
}

func TestThumbnail_VimeoErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewThumbnailFetcher(srv.Client(), zaptest.NewLogger(t))
	f.OEmbedURL = srv.URL

	if _, err := f.Thumbnail(context.Background(), common.EmbedProviderVimeo, "https://vimeo.com/1"); err == nil {
		t.Error("Thumbnail() succeeded on oEmbed error status")
	}
}

func TestThumbnail_UnsupportedProvider(t *testing.T) {
	f := NewThumbnailFetcher(nil, zaptest.NewLogger(t))

	for _, provider := range []common.EmbedProvider{common.EmbedProviderLocal, common.EmbedProviderUnsupported} {
		got, err := f.Thumbnail(context.Background(), provider, "https://example.org/movie.mp4")
		if err != nil {
			t.Errorf("Thumbnail(%s) error = %v", provider, err)
		}
		if got != "" {
			t.Errorf("Thumbnail(%s) = %q, want empty", provider, got)
		}
	}
}
