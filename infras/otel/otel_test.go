package otel_test

import (
	"context"
	"rental/config"
	"rental/infras/otel"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectExtractRoundTrip(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "rental-test"

	tracer := otel.New(cfg)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	ctx, scope := tracer.NewScope(context.Background(), "test", "test.span")
	scope.SetAttributes(map[string]any{"count": 3, "flag": true, "name": "x", "ratio": 0.5})
	scope.End()

	headers := map[string]string{}
	otel.Inject(ctx, headers)
	require.Contains(t, headers, "traceparent")

	extracted := otel.Extract(context.Background(), headers)
	out := map[string]string{}
	otel.Inject(extracted, out)

	assert.Equal(t, headers["traceparent"], out["traceparent"])
}
