package adapter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stegavault/stegavault/internal/adapter"
)

func TestRealJSON_Marshal(t *testing.T) {
	data, err := adapter.NewJSON().Marshal(map[string]string{"name": "<Tom & Jerry>"})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"<Tom & Jerry>"}`, string(data))
}

func TestRealClock(t *testing.T) {
	clock := adapter.NewClock()

	now := clock.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
	assert.GreaterOrEqual(t, clock.Since(now), time.Duration(0))
}
