package corezoid

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/petrijr/corezoid/internal/envelope"
	"github.com/petrijr/corezoid/internal/sign"
	"github.com/petrijr/corezoid/pkg/api"
)

// Client submits batches of operations to the engine and correlates the
// results back to the caller. It holds no mutable state between calls
// and is safe for concurrent use; multiple clients with different
// credentials do not interfere.
type Client struct {
	cfg       Config
	transport Transport
	observer  api.Observer
	limiter   *rate.Limiter
	now       func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport replaces the default HTTP transport. Useful for tests
// and for callers that want their own retry or pooling behavior.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithObserver attaches an Observer for logging and metrics.
func WithObserver(obs api.Observer) Option {
	return func(c *Client) {
		if obs != nil {
			c.observer = obs
		}
	}
}

// WithRateLimiter paces Send calls through the given limiter. Each Send
// waits for one token before invoking the transport.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient validates the configuration and returns a ready Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	c := &Client{
		cfg:      cfg,
		observer: api.NoopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(cfg.Timeout)
	}
	return c, nil
}

// Send signs the given operations, submits them as one envelope, and
// returns the correlated BatchResult.
//
// The error is non-nil only when no BatchResult could be produced:
// *api.ValidationError and *api.SigningError mean nothing was sent,
// *api.TransportError and *api.ProtocolError mean the exchange failed
// or the response could not be interpreted. Per-operation failures and
// correlation problems are reported inside the BatchResult.
func (c *Client) Send(ctx context.Context, ops ...api.Operation) (*api.BatchResult, error) {
	start := c.now()

	env, err := envelope.Build(ops, envelope.BuildConfig{
		Login:        c.cfg.APILogin,
		Secret:       c.cfg.APISecret,
		Algorithm:    c.cfg.algorithm(),
		MaxBatchSize: c.cfg.MaxBatchSize,
	})
	if err != nil {
		c.observer.OnSendFailed(ctx, err, c.now().Sub(start))
		return nil, err
	}
	body, err := env.Encode()
	if err != nil {
		c.observer.OnSendFailed(ctx, err, c.now().Sub(start))
		return nil, err
	}

	ts := strconv.FormatInt(c.now().Unix(), 10)
	hdrSig, err := sign.Request(c.cfg.algorithm(), c.cfg.APISecret, ts, body)
	if err != nil {
		c.observer.OnSendFailed(ctx, err, c.now().Sub(start))
		return nil, err
	}

	c.observer.OnSendStart(ctx, len(ops))

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			terr := &api.TransportError{URL: c.cfg.APIURL, Err: err}
			c.observer.OnSendFailed(ctx, terr, c.now().Sub(start))
			return nil, terr
		}
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("X-API-Login", c.cfg.APILogin)
	header.Set("X-API-Signature", hdrSig)
	header.Set("X-API-Timestamp", ts)

	raw, err := c.transport.Send(ctx, c.cfg.APIURL, body, header)
	if err != nil {
		c.observer.OnSendFailed(ctx, err, c.now().Sub(start))
		return nil, err
	}

	parsed, err := envelope.Parse(raw)
	if err != nil {
		c.observer.OnSendFailed(ctx, err, c.now().Sub(start))
		return nil, err
	}

	res := envelope.Correlate(ops, parsed)
	c.observer.OnSendCompleted(ctx, res, c.now().Sub(start))
	for _, r := range res.Failures() {
		c.observer.OnOperationFailed(ctx, r)
	}
	return res, nil
}

// SendBatch submits the operations accumulated in a Batch.
func (c *Client) SendBatch(ctx context.Context, b *Batch) (*api.BatchResult, error) {
	return c.Send(ctx, b.Operations()...)
}

// VerifyCallback checks the signature of an engine callback request in
// constant time. timestamp and signature come from the X-API-Timestamp
// and X-API-Signature headers; body is the raw request body.
func (c *Client) VerifyCallback(signature, timestamp string, body []byte) bool {
	return sign.VerifyRequest(c.cfg.algorithm(), c.cfg.APISecret, signature, timestamp, body)
}

// CreateTask creates one task. When ref is empty a unique reference is
// generated; the reference used is available on the returned result's
// operation.
func (c *Client) CreateTask(ctx context.Context, convID, ref string, data map[string]any) (api.OpResult, error) {
	if ref == "" {
		ref = newTaskRef()
	}
	return c.sendOne(ctx, api.NewCreate(convID, ref, data))
}

// ModifyTaskByRef modifies a task addressed by its reference.
func (c *Client) ModifyTaskByRef(ctx context.Context, convID, ref string, data map[string]any) (api.OpResult, error) {
	return c.sendOne(ctx, api.NewModifyByRef(convID, ref, data))
}

// ModifyTaskByID modifies a task addressed by its object ID.
func (c *Client) ModifyTaskByID(ctx context.Context, convID, objID string, data map[string]any) (api.OpResult, error) {
	return c.sendOne(ctx, api.NewModifyByID(convID, objID, data))
}

// GetTask reads a task by reference.
func (c *Client) GetTask(ctx context.Context, convID, ref string) (api.OpResult, error) {
	return c.sendOne(ctx, api.NewGetByRef(convID, ref))
}

// GetTaskByID reads a task by object ID.
func (c *Client) GetTaskByID(ctx context.Context, convID, objID string) (api.OpResult, error) {
	return c.sendOne(ctx, api.NewGetByID(convID, objID))
}

// UploadSchema uploads a process schema into the given folder.
func (c *Client) UploadSchema(ctx context.Context, folderID, schema string, async bool) (api.OpResult, error) {
	return c.sendOne(ctx, api.NewUploadSchema(folderID, schema, async))
}

func (c *Client) sendOne(ctx context.Context, op api.Operation) (api.OpResult, error) {
	res, err := c.Send(ctx, op)
	if err != nil {
		return api.OpResult{}, err
	}
	return res.Results[0], nil
}
