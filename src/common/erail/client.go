package erail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jack-barr3tt/erail-engine/src/common/parser"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
	"github.com/jack-barr3tt/erail-engine/src/common/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher retrieves raw upstream bodies for the parser.
type Fetcher interface {
	FetchStationPair(ctx context.Context, from, to string) (types.RawResponse, error)
	FetchTrainInfo(ctx context.Context, trainNo string) (types.RawResponse, error)
	FetchRoute(ctx context.Context, trainID string) (types.RawResponse, error)
	FetchFarePage(ctx context.Context, q types.FareQuery) (types.RawResponse, error)
	FetchPnrPage(ctx context.Context, pnr string) (types.RawResponse, error)
}

type Client struct {
	http      *http.Client
	rdb       *redis.Client
	logger    *zap.SugaredLogger
	erailBase string
	pnrBase   string
	cacheTTL  time.Duration
}

// NewClient builds an upstream client. rdb may be nil, which disables caching.
func NewClient(cfg utils.Config, rdb *redis.Client, logger *zap.SugaredLogger) *Client {
	return &Client{
		http:      &http.Client{Timeout: cfg.UpstreamTimeout},
		rdb:       rdb,
		logger:    logger,
		erailBase: strings.TrimRight(cfg.ErailBaseURL, "/"),
		pnrBase:   strings.TrimRight(cfg.PnrBaseURL, "/"),
		cacheTTL:  cfg.CacheTTL,
	}
}

func (c *Client) FetchStationPair(ctx context.Context, from, to string) (types.RawResponse, error) {
	endpoint := fmt.Sprintf("%s/rail/getTrains.aspx?Station_From=%s&Station_To=%s&DataSource=0&Language=0&Cache=true",
		c.erailBase, url.QueryEscape(from), url.QueryEscape(to))
	return c.fetch(ctx, endpoint, BuildStationPairKey(from, to), nil, false)
}

func (c *Client) FetchTrainInfo(ctx context.Context, trainNo string) (types.RawResponse, error) {
	endpoint := fmt.Sprintf("%s/rail/getTrains.aspx?TrainNo=%s&DataSource=0&Language=0&Cache=true",
		c.erailBase, url.QueryEscape(trainNo))
	return c.fetch(ctx, endpoint, BuildTrainKey(trainNo), nil, false)
}

func (c *Client) FetchRoute(ctx context.Context, trainID string) (types.RawResponse, error) {
	endpoint := fmt.Sprintf("%s/data.aspx?Action=TRAINROUTE&Password=2012&Data1=%s&Data2=0&Cache=true",
		c.erailBase, url.QueryEscape(trainID))
	return c.fetch(ctx, endpoint, BuildRouteKey(trainID), nil, false)
}

func (c *Client) FetchFarePage(ctx context.Context, q types.FareQuery) (types.RawResponse, error) {
	endpoint := FareURL(c.erailBase, q)
	return c.fetch(ctx, endpoint, BuildFareKey(q), map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"Upgrade-Insecure-Requests": "1",
	}, true)
}

// PNR pages are never cached.
func (c *Client) FetchPnrPage(ctx context.Context, pnr string) (types.RawResponse, error) {
	endpoint := fmt.Sprintf("%s/pnr-status/%s", c.pnrBase, url.PathEscape(pnr))
	return c.fetch(ctx, endpoint, "", nil, false)
}

func FareURL(base string, q types.FareQuery) string {
	return fmt.Sprintf("%s/train-fare/%s?from=%s&to=%s&adult=%d&child=%d&sfemale=%d&smale=%d",
		strings.TrimRight(base, "/"), url.PathEscape(q.TrainNo), url.QueryEscape(q.From), url.QueryEscape(q.To),
		q.Adult, q.Child, q.SeniorFemale, q.SeniorMale)
}

// fetch reads an upstream body. Only requireOK endpoints treat a non-200 status as an
// error; the others hand the body to the parser, which classifies error pages itself.
// Non-200 bodies are never cached.
func (c *Client) fetch(ctx context.Context, endpoint, cacheKey string, headers map[string]string, requireOK bool) (types.RawResponse, error) {
	if body, ok := c.cached(ctx, cacheKey); ok {
		return types.RawResponse{Body: body, Source: endpoint}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.RawResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return types.RawResponse{}, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && requireOK {
		return types.RawResponse{}, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.RawResponse{}, fmt.Errorf("read %s: %w", endpoint, err)
	}
	body := string(raw)

	if resp.StatusCode != http.StatusOK {
		c.logger.Warnw("upstream returned non-200 status", "endpoint", endpoint, "status", resp.StatusCode)
		return types.RawResponse{Body: body, Source: endpoint}, nil
	}

	// refusals such as rate limiting must not be served from cache
	if _, rejected := parser.Classify(body); !rejected {
		c.store(ctx, cacheKey, body)
	}

	return types.RawResponse{Body: body, Source: endpoint}, nil
}

func (c *Client) cached(ctx context.Context, key string) (string, bool) {
	if c.rdb == nil || key == "" || c.cacheTTL <= 0 {
		return "", false
	}

	body, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("upstream cache read failed", "key", key, "error", err)
		}
		return "", false
	}

	c.logger.Debugw("upstream cache hit", "key", key)
	return body, true
}

func (c *Client) store(ctx context.Context, key, body string) {
	if c.rdb == nil || key == "" || c.cacheTTL <= 0 {
		return
	}

	if err := c.rdb.Set(ctx, key, body, c.cacheTTL).Err(); err != nil {
		c.logger.Warnw("upstream cache write failed", "key", key, "error", err)
	}
}
