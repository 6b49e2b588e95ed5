package breach

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

const (
	prefixLen       = 5
	cachePrefix     = "hibp:range:"
	defaultCacheTTL = 24 * time.Hour
	userAgent       = "Windkey-Server/1.0"
)

var (
	ErrEmptyPassword = errors.New("password is required")
	ErrUpstream      = errors.New("breach service unavailable")
)

type Result struct {
	Breached bool `json:"breached"`
	Count    int  `json:"count"`
}

type Checker interface {
	Check(ctx context.Context, password string) (Result, error)
}

// Cache keeps range responses so repeated prefixes skip the network.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// HIBPChecker queries the Pwned Passwords range API. Only the first five hex
// characters of the SHA-1 digest leave the process.
type HIBPChecker struct {
	client  *http.Client
	baseURL string
	cache   Cache
	ttl     time.Duration
	log     *slog.Logger
}

func NewHIBPChecker(baseURL string, cache Cache, ttl time.Duration, log *slog.Logger) *HIBPChecker {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &HIBPChecker{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   cache,
		ttl:     ttl,
		log:     log.With(slog.String("component", "breach_checker")),
	}
}

func (c *HIBPChecker) Check(ctx context.Context, password string) (Result, error) {
	if password == "" {
		return Result{}, ErrEmptyPassword
	}

	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := digest[:prefixLen], digest[prefixLen:]

	body, err := c.rangeFor(ctx, prefix)
	if err != nil {
		return Result{}, err
	}

	count := countFor(body, suffix)
	return Result{Breached: count > 0, Count: count}, nil
}

func (c *HIBPChecker) rangeFor(ctx context.Context, prefix string) (string, error) {
	key := cachePrefix + prefix
	if c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.log.Warn("breach cache read failed", slog.String("error", err.Error()))
		} else if ok {
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/range/"+prefix, nil)
	if err != nil {
		return "", fmt.Errorf("build range request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Add-Padding", "true")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	body := string(raw)

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, c.ttl); err != nil {
			c.log.Warn("breach cache write failed", slog.String("error", err.Error()))
		}
	}

	return body, nil
}

// countFor scans "SUFFIX:COUNT" lines. Padding entries carry a zero count.
func countFor(body, suffix string) int {
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		hash, countStr, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(hash, suffix) {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil {
			return 0
		}
		return count
	}
	return 0
}
