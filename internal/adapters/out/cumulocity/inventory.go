// Package cumulocity implements the inventory adapter on top of the Cumulocity REST API.
package cumulocity

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/reubenmiller/go-c8y/pkg/c8y"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/containerlens/containerlens/internal/boundaries/out"
	"github.com/containerlens/containerlens/internal/domain"
	"github.com/containerlens/containerlens/internal/logging"
)

// DefaultTimeout is the default timeout for inventory requests.
const DefaultTimeout = 10 * time.Second

// Config holds the connection settings of the Cumulocity tenant.
type Config struct {
	Host      string  `mapstructure:"host"`
	Tenant    string  `mapstructure:"tenant"`
	Username  string  `mapstructure:"username"`
	Password  string  `mapstructure:"password"`
	Token     string  `mapstructure:"token"`
	Insecure  bool    `mapstructure:"insecure"`
	Timeout   string  `mapstructure:"timeout"`
	RateLimit float64 `mapstructure:"rate_limit"` // requests per second, 0 disables pacing
}

// Inventory implements out.Inventory against the Cumulocity inventory API.
type Inventory struct {
	client     *c8y.Client
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
}

var _ out.Inventory = (*Inventory)(nil)

// Option configures the Inventory.
type Option func(*Inventory)

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(i *Inventory) {
		i.timeout = timeout
	}
}

// WithRateLimit paces outbound requests to rps requests per second.
func WithRateLimit(rps float64) Option {
	return func(i *Inventory) {
		if rps > 0 {
			i.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewInventory creates a Cumulocity inventory adapter.
func NewInventory(cfg Config, opts ...Option) (*Inventory, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: cumulocity host is required", domain.ErrInvalidConfig)
	}

	i := &Inventory{timeout: DefaultTimeout}
	if cfg.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid cumulocity timeout %q", domain.ErrInvalidConfig, cfg.Timeout)
		}
		i.timeout = timeout
	}
	WithRateLimit(cfg.RateLimit)(i)

	for _, opt := range opts {
		opt(i)
	}

	// client spans and trace context propagation for every inventory call
	transport := otelhttp.NewTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		// #nosec G402 - opt-in for edge tenants with self-signed certificates.
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.Insecure,
		},
	})
	i.httpClient = &http.Client{Timeout: i.timeout, Transport: transport}

	i.client = c8y.NewClientFromOptions(i.httpClient, c8y.ClientOptions{
		BaseURL:  cfg.Host,
		Tenant:   cfg.Tenant,
		Username: cfg.Username,
		Password: cfg.Password,
		Token:    cfg.Token,
		Realtime: false,
	})

	return i, nil
}

// FetchChildren returns the child additions of a device matching the query.
func (i *Inventory) FetchChildren(ctx context.Context, deviceID string, query domain.ChildQuery) ([]gjson.Result, error) {
	query = query.Normalize()
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:    "adapter",
		logging.FieldAdapter:  "cumulocity",
		logging.FieldAction:   "FetchChildren",
		logging.FieldDeviceID: deviceID,
	})
	log := logging.FromCtx(ctx)

	if err := i.wait(ctx); err != nil {
		return nil, err
	}

	expr := query.Predicate.Expression()
	_, resp, err := i.client.Inventory.GetChildAdditions(ctx, deviceID, &c8y.ManagedObjectOptions{
		Query: expr,
		PaginationOptions: c8y.PaginationOptions{
			PageSize:       query.PageSize,
			WithTotalPages: query.WithTotalPages,
		},
	})
	if err != nil {
		return nil, classify(resp, err, "device "+deviceID)
	}

	refs := resp.JSON("references").Array()
	objects := make([]gjson.Result, 0, len(refs))
	for _, ref := range refs {
		objects = append(objects, ref.Get("managedObject"))
	}

	log.Debug().
		Str("query", expr).
		Int("page_size", query.PageSize).
		Int(logging.FieldCount, len(objects)).
		Msg("fetched child additions")

	return objects, nil
}

// FetchWithParents returns a single managed object including its parent references.
func (i *Inventory) FetchWithParents(ctx context.Context, objectID string) (gjson.Result, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:    "adapter",
		logging.FieldAdapter:  "cumulocity",
		logging.FieldAction:   "FetchWithParents",
		logging.FieldEntityID: objectID,
	})

	if err := i.wait(ctx); err != nil {
		return gjson.Result{}, err
	}

	_, resp, err := i.client.Inventory.GetManagedObject(ctx, objectID, &c8y.ManagedObjectOptions{
		WithParents: true,
	})
	if err != nil {
		return gjson.Result{}, classify(resp, err, "object "+objectID)
	}

	logging.FromCtx(ctx).Debug().Msg("fetched managed object")
	return resp.JSON(), nil
}

func (i *Inventory) wait(ctx context.Context) error {
	if i.limiter == nil {
		return nil
	}
	if err := i.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return nil
}

// classify maps a failed request onto the domain error taxonomy.
func classify(resp *c8y.Response, err error, subject string) error {
	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	var errResp *c8y.ErrorResponse
	if status == 0 && errors.As(err, &errResp) && errResp.Response != nil {
		status = errResp.Response.StatusCode()
	}

	if status == http.StatusNotFound {
		return fmt.Errorf("%s: %w", subject, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", subject, domain.ErrUnavailable, err)
}
