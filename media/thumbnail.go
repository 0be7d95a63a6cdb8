package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"webdoc/common"
)

const vimeoOEmbedURL = "https://vimeo.com/api/oembed.json"

// ThumbnailFetcher resolves poster images for provider-hosted videos.
// YouTube posters follow a fixed URL scheme; Vimeo posters require an oEmbed
// round trip.
type ThumbnailFetcher struct {
	Client *http.Client
	// OEmbedURL overrides the Vimeo oEmbed endpoint, for tests.
	OEmbedURL string
	Log       *zap.Logger
}

// NewThumbnailFetcher wires a fetcher using the given client,
// http.DefaultClient when nil.
func NewThumbnailFetcher(client *http.Client, log *zap.Logger) *ThumbnailFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ThumbnailFetcher{Client: client, OEmbedURL: vimeoOEmbedURL, Log: log}
}

// Thumbnail returns the poster image URL for a video source, "" without
// error when the provider offers none.
func (f *ThumbnailFetcher) Thumbnail(ctx context.Context, provider common.EmbedProvider, src string) (string, error) {
	switch provider {
	case common.EmbedProviderYoutube:
		id := YouTubeID(src)
		if id == "" {
			return "", fmt.Errorf("no video id in %q", src)
		}
		return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id), nil
	case common.EmbedProviderVimeo:
		return f.vimeoThumbnail(ctx, src)
	default:
		return "", nil
	}
}

func (f *ThumbnailFetcher) vimeoThumbnail(ctx context.Context, src string) (string, error) {
	endpoint := f.OEmbedURL
	if endpoint == "" {
		endpoint = vimeoOEmbedURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?url="+url.QueryEscape(src), nil)
	if err != nil {
		return "", err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to query oEmbed endpoint: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oEmbed endpoint returned %s", resp.Status)
	}
	var payload struct {
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("unable to decode oEmbed response: %w", err)
	}
	return payload.ThumbnailURL, nil
}
