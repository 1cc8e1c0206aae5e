// Package api holds the NFT, Token and Query façades. Each operation turns
// one request into one upstream call, runs it on a bounded worker pool and
// shapes whatever comes back into a canonical page or object.
package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"web3-mcp/internal/normalize"
	"web3-mcp/internal/workerpool"
)

// Observer is notified once per façade operation with the number of items
// it returned and the error it swallowed or surfaced, if any.
type Observer interface {
	ObserveOperation(operation string, items int, err error, duration time.Duration)
}

// Options configures the façades.
type Options struct {
	Pool     *workerpool.Pool
	Logger   zerolog.Logger
	Observer Observer
}

// Service groups the three façades over one upstream.
type Service struct {
	NFT   *NFTAPI
	Token *TokenAPI
	Query *QueryAPI
}

// New builds the façades over upstream.
func New(upstream Upstream, opts Options) *Service {
	b := newBase(opts)
	return &Service{
		NFT:   &NFTAPI{base: b, upstream: upstream.NFT},
		Token: &TokenAPI{base: b, upstream: upstream.Token},
		Query: &QueryAPI{base: b, upstream: upstream.Query},
	}
}

type base struct {
	pool     *workerpool.Pool
	logger   zerolog.Logger
	observer Observer
}

func newBase(opts Options) *base {
	pool := opts.Pool
	if pool == nil {
		pool = workerpool.New(workerpool.DefaultSize)
	}
	return &base{
		pool:     pool,
		logger:   opts.Logger.With().Str("component", "api").Logger(),
		observer: opts.Observer,
	}
}

// listSpec describes how a list operation reads its upstream result.
type listSpec struct {
	op    string
	field string
	// source is the field read from the result when it differs from field.
	source       string
	alternatives []string
	pageSize     int
	defaultSize  int
	maxSize      int
	// keep, when set, filters the serialized items after bounding.
	keep func(item any) bool
	// noToken drops whatever continuation token the result carries.
	noToken bool
}

type extracted struct {
	token *string
	items []any
}

// list runs call and the page extraction on the pool. Any failure yields the
// empty page for the operation.
func (b *base) list(ctx context.Context, spec listSpec, call func(context.Context) (any, error)) *normalize.Page {
	start := time.Now()
	source := spec.source
	if source == "" {
		source = spec.field
	}
	opts := normalize.Options{
		ItemsField:        source,
		AlternativeFields: spec.alternatives,
		PageSize:          spec.pageSize,
		DefaultPageSize:   spec.defaultSize,
		MaxPageSize:       spec.maxSize,
	}

	out, err := workerpool.Do(ctx, b.pool, func(ctx context.Context) (extracted, error) {
		raw, err := call(ctx)
		if err != nil {
			return extracted{}, err
		}
		token, items := normalize.ExtractPage(raw, opts)
		return extracted{token: token, items: items}, nil
	})
	if err != nil {
		b.logger.Warn().Err(err).Str("operation", spec.op).Msg("Returning empty page")
		b.observe(spec.op, 0, err, start)
		return normalize.EmptyPage(spec.field)
	}

	items := make([]any, 0, len(out.items))
	for _, item := range out.items {
		v := normalize.ToSerializable(item)
		if spec.keep != nil && !spec.keep(v) {
			continue
		}
		items = append(items, v)
	}

	token := out.token
	if spec.noToken {
		token = nil
	}
	page := normalize.NewPage(spec.field, token, items)
	b.logger.Debug().
		Str("operation", spec.op).
		Int("items", page.Len()).
		Str("next_page_token", page.NextPageToken).
		Msg("Page extracted")
	b.observe(spec.op, page.Len(), nil, start)
	return page
}

// fetch runs call on the pool and returns its raw result. Errors are
// wrapped as upstream failures of op.
func (b *base) fetch(ctx context.Context, op string, call func(context.Context) (any, error)) (any, error) {
	raw, err := workerpool.Do(ctx, b.pool, call)
	if err != nil {
		return nil, newUpstreamError(op, err)
	}
	return raw, nil
}

func (b *base) observe(op string, items int, err error, start time.Time) {
	if b.observer != nil {
		b.observer.ObserveOperation(op, items, err, time.Since(start))
	}
}

// fail logs and records a surfaced error.
func (b *base) fail(op string, err error, start time.Time) error {
	b.logger.Warn().Err(err).Str("operation", op).Msg("Operation failed")
	b.observe(op, 0, err, start)
	return err
}
