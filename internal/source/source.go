// Package source fetches the full country list from the remote data provider.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"countrycat/internal/country"
)

// DefaultEndpoint serves every country in a single JSON array.
const DefaultEndpoint = "https://restcountries.com/v3.1/all"

// ErrUnexpectedStatus is returned when the endpoint answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Source is a one-shot provider of the full record set.
type Source interface {
	Fetch(ctx context.Context) ([]country.Record, error)
}

// HTTPSource issues one GET per Fetch call. It never retries and sets no
// client-side timeout; cancellation comes from ctx.
type HTTPSource struct {
	Endpoint string
	Client   *http.Client
	Logger   *slog.Logger

	tracer oteltrace.Tracer
}

// Ensure HTTPSource implements Source.
var _ Source = (*HTTPSource)(nil)

// NewHTTPSource creates a source for endpoint, falling back to DefaultEndpoint.
func NewHTTPSource(endpoint string, logger *slog.Logger) *HTTPSource {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPSource{
		Endpoint: endpoint,
		Client:   http.DefaultClient,
		Logger:   logger,
		tracer:   otel.Tracer("countrycat/source"),
	}
}

// Fetch downloads and decodes the country list.
func (s *HTTPSource) Fetch(ctx context.Context) ([]country.Record, error) {
	tracer := s.tracer
	if tracer == nil {
		tracer = otel.Tracer("countrycat/source")
	}
	ctx, span := tracer.Start(ctx, "countries.fetch",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(attribute.String("countrycat.endpoint", s.Endpoint)),
	)
	defer span.End()

	records, err := s.fetch(ctx, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("countrycat.records", len(records)))
	return records, nil
}

func (s *HTTPSource) fetch(ctx context.Context, span oteltrace.Span) ([]country.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	s.logger().Debug("fetching countries", "endpoint", s.Endpoint)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.Endpoint, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: %w: %s", s.Endpoint, ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	records, err := country.Decode(body)
	if err != nil {
		return nil, err
	}
	s.logger().Info("fetched countries", "count", len(records), "bytes", len(body))
	return records, nil
}

func (s *HTTPSource) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
