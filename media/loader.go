package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"webdoc/common"
)

// Provider player SDK locations. Local files play through the native video
// element and need no SDK.
var sdkURLs = map[common.EmbedProvider]string{
	common.EmbedProviderYoutube: "https://www.youtube.com/iframe_api",
	common.EmbedProviderVimeo:   "https://player.vimeo.com/api/player.js",
}

// SDKURL returns the player SDK location for the provider, "" when the
// provider needs none.
func SDKURL(provider common.EmbedProvider) string {
	return sdkURLs[provider]
}

type sdkLoad struct {
	done   chan struct{}
	script string
	err    error
}

// SDKLoader fetches provider player SDKs at most once per provider.
// Concurrent requests for the same provider share a single in-flight fetch;
// a failed fetch is forgotten so the next request retries.
type SDKLoader struct {
	Client *http.Client

	mu    sync.Mutex
	loads map[common.EmbedProvider]*sdkLoad
}

// NewSDKLoader wires a loader using the given client, http.DefaultClient
// when nil.
func NewSDKLoader(client *http.Client) *SDKLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &SDKLoader{Client: client, loads: make(map[common.EmbedProvider]*sdkLoad)}
}

// Load returns the player SDK script for the provider, fetching it on first
// use. Waiting callers observe the first fetch's result; the context only
// bounds this caller's wait, never the shared fetch.
func (l *SDKLoader) Load(ctx context.Context, provider common.EmbedProvider) (string, error) {
	url := SDKURL(provider)
	if url == "" {
		return "", fmt.Errorf("provider %q has no player SDK", provider)
	}

	l.mu.Lock()
	load, inflight := l.loads[provider]
	if !inflight {
		load = &sdkLoad{done: make(chan struct{})}
		l.loads[provider] = load
		go l.fetch(provider, url, load)
	}
	l.mu.Unlock()

	select {
	case <-load.done:
		return load.script, load.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (l *SDKLoader) fetch(provider common.EmbedProvider, url string, load *sdkLoad) {
	defer close(load.done)

	load.script, load.err = l.download(url)
	if load.err != nil {
		l.mu.Lock()
		delete(l.loads, provider)
		l.mu.Unlock()
	}
}

func (l *SDKLoader) download(url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to fetch player SDK: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unable to fetch player SDK: %s returned %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("unable to read player SDK: %w", err)
	}
	return string(body), nil
}
