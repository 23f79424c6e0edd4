package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(
		WithRedisAddr("127.0.0.1:1"),
		WithRedisPingTimeout(200*time.Millisecond),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping 127.0.0.1:1")
}
