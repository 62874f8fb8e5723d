package port_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/port"
	"github.com/stretchr/testify/assert"
)

func TestUTCClock(t *testing.T) {
	clock := port.UTCClock()

	for range 100 {
		now := clock.Now()
		assert.Equal(t, time.UTC, now.Location())
		assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
		assert.True(t, now.Equal(now.Truncate(time.Microsecond)))
	}
}
