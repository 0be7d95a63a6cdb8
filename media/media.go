// Package media resolves authored video sources into provider embeds and
// tracks playback progress. Only locally hosted files and the two supported
// streaming providers produce output; anything else is logged and skipped.
package media

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"webdoc/common"
)

// Options select the authored embed presentation.
type Options struct {
	// Background strips the player chrome and loops the video silently.
	Background bool
	// Thumbnail marks an embed that starts playing once its poster is
	// clicked through.
	Thumbnail bool
}

// Plan is everything the renderer needs to emit a playable embed.
type Plan struct {
	Provider  common.EmbedProvider
	VideoID   string
	ElementID string
	// EmbedURL is the iframe source for streaming providers and the direct
	// file URL for locally hosted video.
	EmbedURL string
	// Allow is the iframe feature policy, empty for local files.
	Allow string
}

// Resolver classifies video sources and builds embed plans.
type Resolver struct {
	// AssetDomain prefixes locally hosted media.
	AssetDomain string
	// Origin is passed to providers that enforce frame origin checks.
	Origin string
	Log    *zap.Logger
}

// NewResolver wires a resolver for the given hosting configuration.
func NewResolver(assetDomain, origin string, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{AssetDomain: assetDomain, Origin: origin, Log: log}
}

var (
	// Covers watch, short-link, embed (plain and nocookie), shorts,
	// attribution_link and oembed URL shapes. Encoded forms carry the id
	// after "v%3D".
	youtubeIDRe = regexp.MustCompile(`(?:youtu\.be/|/v/|/u/\w/|embed/|shorts/|watch\?v=|&v=|v%3D)([^#&?%/]+)`)
	vimeoIDRe   = regexp.MustCompile(`(?i)vimeo\.com.*(?:videos|video|channels|)/(\d+)`)
)

// YouTubeID extracts the 11-character video id from any of the public
// YouTube URL shapes, "" when none matches.
func YouTubeID(src string) string {
	m := youtubeIDRe.FindStringSubmatch(src)
	if m == nil || len(m[1]) != 11 {
		return ""
	}
	return m[1]
}

// VimeoID extracts the numeric video id from a Vimeo URL, "" when none
// matches.
func VimeoID(src string) string {
	m := vimeoIDRe.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	return m[1]
}

// Classify determines which provider should handle the source. Locally
// hosted files are recognized by the configured asset domain prefix.
func (r *Resolver) Classify(src string) common.EmbedProvider {
	if r.AssetDomain != "" && strings.HasPrefix(src, r.AssetDomain) {
		return common.EmbedProviderLocal
	}
	if YouTubeID(src) != "" {
		return common.EmbedProviderYoutube
	}
	if VimeoID(src) != "" {
		return common.EmbedProviderVimeo
	}
	return common.EmbedProviderUnsupported
}

// ResolveEmbed builds the embed plan for a video source. Unsupported sources
// return nil after logging - the surrounding content still renders.
func (r *Resolver) ResolveEmbed(src string, opts Options) *Plan {
	provider := r.Classify(src)
	plan := &Plan{
		Provider:  provider,
		ElementID: fmt.Sprintf("video-%s", uuid.NewString()),
	}
	switch provider {
	case common.EmbedProviderLocal:
		plan.EmbedURL = src
	case common.EmbedProviderYoutube:
		plan.VideoID = YouTubeID(src)
		plan.EmbedURL = r.youtubeEmbedURL(plan.VideoID, opts)
		plan.Allow = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"
	case common.EmbedProviderVimeo:
		plan.VideoID = VimeoID(src)
		plan.EmbedURL = vimeoEmbedURL(plan.VideoID, opts)
		plan.Allow = "autoplay; fullscreen; picture-in-picture"
	default:
		r.Log.Warn("Skipping video from unsupported provider", zap.String("src", src))
		return nil
	}
	return plan
}

func (r *Resolver) youtubeEmbedURL(id string, opts Options) string {
	q := url.Values{}
	q.Set("enablejsapi", "1")
	if r.Origin != "" {
		q.Set("origin", r.Origin)
	}
	q.Set("mute", "1")
	switch {
	case opts.Background:
		q.Set("autoplay", "1")
		q.Set("controls", "0")
		q.Set("loop", "1")
		q.Set("playlist", id)
	case opts.Thumbnail:
		q.Set("autoplay", "1")
	}
	return "https://www.youtube.com/embed/" + id + "?" + q.Encode()
}

func vimeoEmbedURL(id string, opts Options) string {
	q := url.Values{}
	q.Set("api", "1")
	switch {
	case opts.Background:
		q.Set("background", "1")
	case opts.Thumbnail:
		q.Set("autoplay", "1")
	}
	return "https://player.vimeo.com/video/" + id + "?" + q.Encode()
}
