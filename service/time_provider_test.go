package service

import (
	"testing"
	"time"

	"reactivemesh/helpers"

	"github.com/stretchr/testify/assert"
)

func TestNewTimeProvider_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "service.time_provider.go: now is required", func() {
		NewTimeProvider(nil)
	})
}

func TestTimeProvider_ReadsClockEveryCall(t *testing.T) {
	current := helpers.TestNow()
	tp := NewTimeProvider(func() time.Time { return current })

	assert.Equal(t, helpers.TestNow(), tp.Now())
	current = current.Add(time.Minute)
	assert.Equal(t, helpers.TestNow().Add(time.Minute), tp.Now())
}

func TestNewUTCTimeProvider(t *testing.T) {
	before := time.Now()
	now := NewUTCTimeProvider().Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.False(t, now.Before(before.Truncate(time.Second)))
	assert.Contains(t, Greeting("Meghan", now), "Z")
}
