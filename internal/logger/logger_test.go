package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_FromContext(t *testing.T) {
	log := New()
	ctx := context.WithValue(context.Background(), ContextKey, log)

	require.Same(t, log, FromContext(ctx))

	// missing logger falls back to a fresh one instead of panicking
	require.NotNil(t, FromContext(context.Background()))
}
