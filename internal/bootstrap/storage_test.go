package bootstrap

import (
	"context"
	"testing"

	"github.com/Domenick1991/eventra/config"
	"github.com/Domenick1991/eventra/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenKV_Memory(t *testing.T) {
	kv, closeFn, err := OpenKV(context.Background(), config.Default())

	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &store.MemoryKV{}, kv)
}

func TestOpenKV_Unknown(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = "sqlite"

	_, _, err := OpenKV(context.Background(), cfg)

	assert.Error(t, err)
}
