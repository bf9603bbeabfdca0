// Package poster decorates poster artwork with rating badges and a footer
// drawn with a built-in bitmap font.
package poster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

// Canvas geometry.
const (
	Width  = 500
	Height = 750

	badgeTop       = 10
	badgeRightEdge = 488
	badgeGutter    = 6
	badgeScale     = 5

	footerTop    = 712
	footerHeight = 38
	footerAlpha  = 0.85
	footerTextY  = 718
	footerTextX  = 10
	footerScale  = 3

	jpegQuality = 85

	DefaultTimeout = 5 * time.Second
	maxSourceBytes = 15 << 20
	BrandText      = "KIDSFLIX"
)

var (
	primaryFG   = color.NRGBA{0, 0, 0, 255}
	primaryBG   = color.NRGBA{245, 197, 24, 255}
	secondaryFG = color.NRGBA{255, 255, 255, 255}
	secondaryBG = color.NRGBA{220, 30, 10, 255}
	runtimeFG   = color.NRGBA{200, 200, 200, 255}
	brandFG     = color.NRGBA{50, 205, 50, 255}
	transparent = color.NRGBA{}
)

// MaxRuntimeRunes bounds the footer runtime text.
const MaxRuntimeRunes = 12

var (
	primaryPattern   = regexp.MustCompile(`^\d{1,2}(\.\d)?$`)
	secondaryPattern = regexp.MustCompile(`^\d{1,3}$`)
)

// DefaultAllowedHosts are the image hosts posters may be fetched from.
var DefaultAllowedHosts = []string{"image.tmdb.org"}

// ErrSourceNotAllowed is returned for source URLs outside the allow-list.
var ErrSourceNotAllowed = errors.New("poster: source host not allowed")

var decodableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Ratings are the badge values. Empty strings are not drawn.
type Ratings struct {
	Primary   string
	Secondary string
}

type Options struct {
	HTTPClient   *http.Client
	Timeout      time.Duration
	AllowedHosts []string
}

// Renderer fetches and decorates poster images.
type Renderer struct {
	httpc        *http.Client
	timeout      time.Duration
	allowedHosts []string
	log          *slog.Logger
}

func NewRenderer(opts Options) *Renderer {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.AllowedHosts == nil {
		opts.AllowedHosts = DefaultAllowedHosts
	}
	return &Renderer{
		httpc:        opts.HTTPClient,
		timeout:      opts.Timeout,
		allowedHosts: opts.AllowedHosts,
		log:          slog.Default().With("component", "poster"),
	}
}

// Allowed reports whether src is an http(s) URL on an allowed host. An empty
// allow-list permits every host.
func (r *Renderer) Allowed(src string) bool {
	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}
	if len(r.allowedHosts) == 0 {
		return true
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range r.allowedHosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// Decorate is Draw with every failure reported as absent.
func (r *Renderer) Decorate(ctx context.Context, src string, ratings Ratings, runtime string) ([]byte, bool) {
	out, err := r.Draw(ctx, src, ratings, runtime)
	if err != nil {
		r.log.Warn("poster.decorate_failed", "error", err)
		return nil, false
	}
	return out, true
}

// Draw fetches src, composes the badges and returns a JPEG.
func (r *Renderer) Draw(ctx context.Context, src string, ratings Ratings, runtime string) ([]byte, error) {
	if !r.Allowed(src) {
		return nil, ErrSourceNotAllowed
	}
	img, err := r.fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, Compose(img, ratings, runtime), imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("poster: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) fetch(ctx context.Context, src string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("poster: build request: %w", err)
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poster: fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("poster: fetch: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("poster: read: %w", err)
	}
	mt := mimetype.Detect(body)
	if !decodableTypes[mt.String()] {
		return nil, fmt.Errorf("poster: unsupported content %s", mt.String())
	}
	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("poster: decode %s: %w", mt.String(), err)
	}
	return img, nil
}

// Compose cover-fits img to the poster canvas and draws the badges, footer,
// runtime and brand.
func Compose(img image.Image, ratings Ratings, runtime string) *image.NRGBA {
	ratings, runtime = Clean(ratings, runtime)
	dst := imaging.Fill(img, Width, Height, imaging.Center, imaging.Lanczos)

	rightEdge := badgeRightEdge
	if present(ratings.Primary) {
		badge := RenderText(ratings.Primary, badgeScale, primaryFG, primaryBG)
		w := badge.Bounds().Dx()
		dst = imaging.Overlay(dst, badge, image.Pt(rightEdge-w, badgeTop), 1)
		rightEdge -= w + badgeGutter
	}
	if present(ratings.Secondary) {
		badge := RenderText(ratings.Secondary+"%", badgeScale, secondaryFG, secondaryBG)
		dst = imaging.Overlay(dst, badge, image.Pt(rightEdge-badge.Bounds().Dx(), badgeTop), 1)
	}

	footer := imaging.New(Width, footerHeight, color.NRGBA{0, 0, 0, 255})
	dst = imaging.Overlay(dst, footer, image.Pt(0, footerTop), footerAlpha)

	hasRuntime := present(runtime)
	if hasRuntime {
		text := RenderText(strings.ToUpper(runtime), footerScale, runtimeFG, transparent)
		dst = imaging.Overlay(dst, text, image.Pt(footerTextX, footerTextY), 1)
	}

	brand := RenderText(BrandText, footerScale, brandFG, transparent)
	bw := brand.Bounds().Dx()
	x := (Width - bw) / 2
	if hasRuntime {
		x = badgeRightEdge - bw
	}
	return imaging.Overlay(dst, brand, image.Pt(x, footerTextY), 1)
}

// Clean drops badge values that are not a score ("7.3", "10"), a percentage
// ("93") or a short runtime. Dropped values are not drawn.
func Clean(ratings Ratings, runtime string) (Ratings, string) {
	ratings.Primary = strings.TrimSpace(ratings.Primary)
	if !primaryPattern.MatchString(ratings.Primary) {
		ratings.Primary = ""
	}
	ratings.Secondary = strings.TrimSuffix(strings.TrimSpace(ratings.Secondary), "%")
	if !secondaryPattern.MatchString(ratings.Secondary) {
		ratings.Secondary = ""
	}
	runtime = strings.TrimSpace(runtime)
	if utf8.RuneCountInString(runtime) > MaxRuntimeRunes {
		runtime = ""
	}
	return ratings, runtime
}

// present filters the placeholder values query strings tend to carry.
func present(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "null", "undefined", "N/A":
		return false
	}
	return true
}
