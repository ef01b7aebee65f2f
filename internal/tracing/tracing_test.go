package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests mutate the global tracer provider and must not run in parallel.

func TestInitExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), &buf, "test")
	require.NoError(t, err)

	_, span := Tracer().Start(context.Background(), "rank")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"Name":"rank"`)
	assert.Contains(t, out, "linkrank")
}

func TestInitDisabled(t *testing.T) {
	shutdown, err := Init(context.Background(), nil, "test")
	require.NoError(t, err)

	_, span := Tracer().Start(context.Background(), "rank")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, shutdown(context.Background()))
}
