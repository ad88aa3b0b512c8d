package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lauzhack-dataset/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("lib/fetch")

// pages rendered entirely client-side come back as a tiny html shell,
// anything shorter than this is treated as incomplete
const minContentLength = 3000

// Renderer produces fully rendered page content for urls whose plain
// GET response looks incomplete. Browser automation lives behind this
// interface and out of this package.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

type Client struct {
	http     *resty.Client
	renderer Renderer
}

type ClientOptions struct {
	// optional, when nil incomplete pages are returned as-is
	Renderer Renderer
	Timeout  time.Duration
}

func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("user-agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetHeader("cache-control", "no-cache")
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "lib/fetch/http")

	return &Client{
		http:     client,
		renderer: opts.Renderer,
	}
}

// Fetch retrieves the rendered html for a url. When the plain GET
// fails or returns a suspiciously short body, the configured Renderer
// is consulted instead.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if c.renderer == nil {
			span.SetStatus(codes.Error, "failed to fetch")
			return "", err
		}
		slog.WarnContext(ctx, "plain fetch failed, falling back to renderer", "url", url, "err", err)
		return c.renderer.Render(ctx, url)
	}

	body := res.String()
	if res.StatusCode() < 400 && len(strings.TrimSpace(body)) >= minContentLength {
		return body, nil
	}

	span.AddEvent("incomplete response", trace.WithAttributes(
		attribute.Int("status", res.StatusCode()),
		attribute.Int("length", len(body)),
	))
	if c.renderer != nil {
		slog.DebugContext(
			ctx, "response looks incomplete, re-rendering",
			"url", url,
			"status", res.StatusCode(),
			"length", len(body),
		)
		return c.renderer.Render(ctx, url)
	}
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, "bad status")
		return "", fmt.Errorf("fetch %s: status %d", url, res.StatusCode())
	}

	slog.WarnContext(ctx, "response looks incomplete and no renderer is configured", "url", url, "length", len(body))
	return body, nil
}
