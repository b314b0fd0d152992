package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/umalmyha/customer-records/internal/config"
)

func TestRunReturnsStartupErrors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "cassandra")
		require.ErrorContains(t, run(), "unsupported storage driver")
	})

	t.Run("unreachable redis after storage is opened", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", config.StorageMemory)
		t.Setenv("REDIS_ADDR", "127.0.0.1:1")
		require.Error(t, run(), "redis failure must be returned so opened storage is closed")
	})
}
