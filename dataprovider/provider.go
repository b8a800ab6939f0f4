package dataprovider

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fetchkit/fetch"
	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/observability"
)

// Provider performs CRUD operations on REST resources.
type Provider struct {
	simple *Simple
	log    *logger.Logger
	tracer trace.Tracer
}

type options struct {
	log     *logger.Logger
	tracer  trace.Tracer
	handles []fetch.Handle
}

// Option configures a Provider.
type Option func(*options)

// WithLogger sets the logger. Operations are logged at debug.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracerProvider sets the provider operation spans are created on.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracer = observability.Tracer(tp) }
}

// WithHandles adds binding-time handles, such as a transport or auth.
func WithHandles(handles ...fetch.Handle) Option {
	return func(o *options) { o.handles = append(o.handles, handles...) }
}

// New builds a Provider over NewSimple(base, countHeader, handles...).
func New(base, countHeader string, opts ...Option) (*Provider, error) {
	o := options{tracer: observability.Tracer(nil)}
	for _, opt := range opts {
		opt(&o)
	}
	s, err := NewSimple(base, countHeader, o.handles...)
	if err != nil {
		return nil, err
	}
	return &Provider{
		simple: s,
		log:    logger.OrNop(o.log).WithComponent("dataprovider"),
		tracer: o.tracer,
	}, nil
}

// Simple returns the underlying fetchers.
func (p *Provider) Simple() *Simple { return p.simple }

// GetList fetches one page of resource.
func (p *Provider) GetList(ctx context.Context, resource string, params ListParams) (ListResult, error) {
	return p.list(ctx, "getList", resource, listQuery(params))
}

// GetManyReference fetches one page of resource records whose
// params.Target field equals params.ID.
func (p *Provider) GetManyReference(ctx context.Context, resource string, params ReferenceParams) (ListResult, error) {
	ref := fetch.Param{Key: params.Target, Value: formatValue(params.ID)}
	return p.list(ctx, "getManyReference", resource, listQuery(params.ListParams, ref))
}

// GetOne fetches resource/id.
func (p *Provider) GetOne(ctx context.Context, resource string, id any) (Record, error) {
	return fetchOne[Record](ctx, p, "getOne", resource,
		fetch.WithPath(itemPath(resource, id), fetch.Merge),
	)
}

// GetMany fetches the records of resource with the given ids.
func (p *Provider) GetMany(ctx context.Context, resource string, ids []any) ([]Record, error) {
	return fetchOne[[]Record](ctx, p, "getMany", resource,
		fetch.WithPath(resource, fetch.Merge),
		fetch.WithQuery(idsQuery(ids), fetch.Merge),
	)
}

// Create posts data to resource and returns the created record.
func (p *Provider) Create(ctx context.Context, resource string, data any) (Record, error) {
	return fetchOne[Record](ctx, p, "create", resource,
		fetch.WithPath(resource, fetch.Merge),
		fetch.WithMethod(http.MethodPost),
		fetch.WithJSONBody(data),
	)
}

// Update patches resource/id with data and returns the updated record.
func (p *Provider) Update(ctx context.Context, resource string, id any, data any) (Record, error) {
	return fetchOne[Record](ctx, p, "update", resource,
		fetch.WithPath(itemPath(resource, id), fetch.Merge),
		fetch.WithMethod(http.MethodPatch),
		fetch.WithJSONBody(data),
	)
}

// UpdateMany patches every record in ids with data and returns the ids the
// server reports as updated.
func (p *Provider) UpdateMany(ctx context.Context, resource string, ids []any, data any) ([]any, error) {
	rows, err := fetchOne[[]Record](ctx, p, "updateMany", resource,
		fetch.WithPath(resource, fetch.Merge),
		fetch.WithQuery(idsQuery(ids), fetch.Merge),
		fetch.WithMethod(http.MethodPatch),
		fetch.WithJSONBody(map[string]any{"data": data}),
	)
	if err != nil {
		return nil, err
	}
	return extractIDs(rows)
}

// Delete removes resource/id and returns the deleted record.
func (p *Provider) Delete(ctx context.Context, resource string, id any) (Record, error) {
	return fetchOne[Record](ctx, p, "delete", resource,
		fetch.WithPath(itemPath(resource, id), fetch.Merge),
		fetch.WithMethod(http.MethodDelete),
	)
}

// DeleteMany removes every record in ids and returns the ids the server
// reports as deleted.
func (p *Provider) DeleteMany(ctx context.Context, resource string, ids []any) ([]any, error) {
	rows, err := fetchOne[[]Record](ctx, p, "deleteMany", resource,
		fetch.WithPath(resource, fetch.Merge),
		fetch.WithQuery(idsQuery(ids), fetch.Merge),
		fetch.WithMethod(http.MethodDelete),
	)
	if err != nil {
		return nil, err
	}
	return extractIDs(rows)
}

func (p *Provider) list(ctx context.Context, op, resource string, q fetch.Query) (ListResult, error) {
	out, err := p.do(ctx, p.simple.FetchMany, op, resource,
		fetch.WithPath(resource, fetch.Merge),
		fetch.WithQuery(q, fetch.Merge),
		fetch.WithResponder(fetch.RespondJSONAs[[]Record](), fetch.Replace),
	)
	if err != nil {
		return ListResult{}, err
	}
	values, ok := out.([]any)
	if !ok || len(values) != 2 {
		return ListResult{}, fmt.Errorf("dataprovider: %s: unexpected result %T", op, out)
	}
	total, _ := values[0].(int)
	rows, _ := values[1].([]Record)
	return ListResult{Data: rows, Total: total}, nil
}

// fetchOne runs a FetchOne request with the JSON responder decoding into T.
func fetchOne[T any](ctx context.Context, p *Provider, op, resource string, handles ...fetch.Handle) (T, error) {
	var zero T
	handles = append(handles, fetch.WithResponder(fetch.RespondJSONAs[T](), fetch.Replace))
	out, err := p.do(ctx, p.simple.FetchOne, op, resource, handles...)
	if err != nil {
		return zero, err
	}
	v, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("dataprovider: %s: unexpected result %T", op, out)
	}
	return v, nil
}

func (p *Provider) do(ctx context.Context, f *fetch.Fetcher, op, resource string, handles ...fetch.Handle) (any, error) {
	ctx, span := p.tracer.Start(ctx, observability.SpanProvider+"."+op, trace.WithAttributes(
		attribute.String(observability.AttrOperation, op),
		attribute.String(observability.AttrResource, resource),
	))
	defer span.End()

	p.log.Debug("dataprovider operation", logger.Fields(
		logger.FieldOperation, op,
		logger.FieldResource, resource,
	))
	out, err := f.Do(ctx, handles...)
	if err != nil {
		observability.SetSpanError(ctx, err)
		p.log.WithError(err).Debug("dataprovider operation failed", logger.Fields(
			logger.FieldOperation, op,
			logger.FieldResource, resource,
		))
		return nil, err
	}
	return out, nil
}

func itemPath(resource string, id any) string {
	return resource + "/" + formatValue(id)
}

// IDs converts typed ids for GetMany, UpdateMany and DeleteMany.
func IDs[T any](ids ...T) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
