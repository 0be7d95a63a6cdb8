package render

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"webdoc/assets"
	"webdoc/common"
	"webdoc/config"
	"webdoc/doc"
	"webdoc/i18n"
	"webdoc/links"
	"webdoc/media"
	"webdoc/state"
)

//go:embed default.css
var defaultStylesheet []byte

// Run implements the render subcommand: it reads authored document trees
// (JSON) from the source, renders each one to HTML and writes the results
// under the destination.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := config.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to page", zap.Error(err))
		format = config.OutputFmtPage
	}

	env.Style = defaultStylesheet
	if env.Cfg.Document.StylesheetPath != "" {
		data, err := os.ReadFile(env.Cfg.Document.StylesheetPath)
		if err != nil {
			return fmt.Errorf("unable to read style css from %q: %w", env.Cfg.Document.StylesheetPath, err)
		}
		env.Style = data
	}

	if env.Cfg.Document.AssetManifestPath != "" {
		if env.Assets, err = assets.LoadManifest(env.Cfg.Document.AssetManifestPath); err != nil {
			return fmt.Errorf("unable to load asset manifest: %w", err)
		}
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, env, log)
}

func process(ctx context.Context, src, dst string, format config.OutputFmt, env *state.LocalEnv, log *zap.Logger) error {
	p, err := newPipeline(ctx, format, env, log)
	if err != nil {
		return err
	}

	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("unable to access source: %w", err)
	}
	if !fi.IsDir() {
		return p.renderFile(ctx, src, filepath.Base(src), dst)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		return p.renderFile(ctx, path, rel, dst)
	})
}

// pipeline bundles the collaborators shared by every document in a run.
type pipeline struct {
	format     config.OutputFmt
	env        *state.LocalEnv
	log        *zap.Logger
	localizer  *i18n.Localizer
	normalizer *doc.Normalizer
	renderer   *Renderer
	thumbs     *media.ThumbnailFetcher
}

func newPipeline(ctx context.Context, format config.OutputFmt, env *state.LocalEnv, log *zap.Logger) (*pipeline, error) {
	cfg := env.Cfg

	localizer := i18n.New(cfg.Site.Locale)

	classifier := links.NewClassifier(cfg.Site.Origin, localizer)

	resolver := media.NewResolver(cfg.Site.AssetDomain, cfg.Site.Origin, log)
	sanitizer := NewSanitizer(cfg.Site.BasePath, localizer.Locale(), cfg.Site.SiteID)

	normalizer := doc.NewNormalizer(classifier, env.Assets, localizer, nil, log)
	renderer := NewRenderer(resolver, nil, sanitizer, "stylesheet.css", log)
	renderer.MapsKey = string(cfg.Site.MapsAPIKey)

	p := &pipeline{
		format:     format,
		env:        env,
		log:        log,
		localizer:  localizer,
		normalizer: normalizer,
		renderer:   renderer,
	}

	if cfg.Document.Video.Thumbnails {
		p.thumbs = media.NewThumbnailFetcher(nil, log)
	}
	if cfg.Document.Video.PreloadSDK {
		p.preloadSDKs(ctx)
	}
	return p, nil
}

// preloadSDKs warms the player SDK cache and records the script locations so
// rendered pages can preload them from the head.
func (p *pipeline) preloadSDKs(ctx context.Context) {
	loader := media.NewSDKLoader(nil)
	for _, provider := range []common.EmbedProvider{common.EmbedProviderYoutube, common.EmbedProviderVimeo} {
		start := time.Now()
		script, err := loader.Load(ctx, provider)
		if err != nil {
			p.log.Warn("Unable to preload player SDK", zap.Stringer("provider", provider), zap.Error(err))
			continue
		}
		p.log.Debug("Player SDK preloaded", zap.Stringer("provider", provider), zap.Int("size", len(script)), zap.Duration("elapsed", time.Since(start)))
		p.renderer.SDKRefs = append(p.renderer.SDKRefs, media.SDKURL(provider))
	}
}

func (p *pipeline) renderFile(ctx context.Context, path, rel, dst string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open source %q: %w", path, err)
	}
	root, err := doc.ParseDocument(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("unable to parse document %q: %w", path, err)
	}

	blocks := p.normalizer.Normalize(root)
	p.fetchPosters(ctx, blocks)

	title := documentTitle(blocks, rel)
	values := Values{
		Title:      title,
		Language:   p.localizer.Locale(),
		Format:     p.format.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel)),
		Date:       time.Now().Format("2006-01-02"),
	}

	var markup string
	if p.format.Standalone() {
		markup, err = p.renderer.Render(title, blocks)
	} else {
		markup, err = p.renderer.Fragment(blocks)
	}
	if err != nil {
		return fmt.Errorf("unable to render %q: %w", path, err)
	}

	out := buildOutputPath(values, rel, dst, p.format, p.env)
	if err := p.writeOutput(out, markup); err != nil {
		return err
	}
	p.log.Info("Document rendered", zap.String("source", path), zap.String("output", out))
	return nil
}

// fetchPosters resolves poster images for provider-hosted videos before the
// page is assembled. Failures only cost the poster, never the render.
func (p *pipeline) fetchPosters(ctx context.Context, blocks []doc.Block) {
	if p.thumbs == nil {
		return
	}
	if p.renderer.Posters == nil {
		p.renderer.Posters = make(map[string]string)
	}
	p.collectPosters(ctx, blocks)
}

// collectPosters walks the whole block tree - videos may sit inside list
// items, blockquotes, table cells and collapsible sections.
func (p *pipeline) collectPosters(ctx context.Context, blocks []doc.Block) {
	for i := range blocks {
		b := &blocks[i]
		switch b.Kind {
		case doc.BlockVideo:
			p.fetchPoster(ctx, b.Video.Src)
		case doc.BlockOrdered, doc.BlockBullet:
			for _, item := range b.List.Items {
				p.collectPosters(ctx, item)
			}
		case doc.BlockQuote:
			p.collectPosters(ctx, b.Quote.Content)
		case doc.BlockTable:
			for _, row := range b.Table.Rows {
				for _, cell := range row.Cells {
					p.collectPosters(ctx, cell.Content)
				}
			}
		case doc.BlockDetails:
			p.collectPosters(ctx, b.Details.Content)
		}
	}
}

func (p *pipeline) fetchPoster(ctx context.Context, src string) {
	if _, done := p.renderer.Posters[src]; done {
		return
	}
	provider := p.renderer.Media.Classify(src)
	poster, err := p.thumbs.Thumbnail(ctx, provider, src)
	if err != nil {
		p.log.Warn("Unable to fetch video poster", zap.String("src", src), zap.Error(err))
		return
	}
	if poster != "" {
		p.renderer.Posters[src] = poster
	}
}

func (p *pipeline) writeOutput(out, markup string) error {
	if _, err := os.Stat(out); err == nil && !p.env.Overwrite {
		return fmt.Errorf("destination %q already exists, use overwrite to replace it", out)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(markup), 0644); err != nil {
		return fmt.Errorf("unable to write output %q: %w", out, err)
	}
	if p.format.Standalone() {
		css := filepath.Join(filepath.Dir(out), "stylesheet.css")
		if _, err := os.Stat(css); err != nil || p.env.Overwrite {
			if err := os.WriteFile(css, p.env.Style, 0644); err != nil {
				return fmt.Errorf("unable to write stylesheet: %w", err)
			}
		}
	}
	return nil
}

// documentTitle derives a page title from the first heading, falling back to
// the source file name.
func documentTitle(blocks []doc.Block, rel string) string {
	for i := range blocks {
		if blocks[i].Kind == doc.BlockHeading {
			if text := StripTags(blocks[i].Heading.Markup); text != "" {
				return text
			}
		}
	}
	return strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
}
