package clock_test

import (
	"testing"
	"time"

	"github.com/rpggio/countdown/internal/clock"
	"github.com/stretchr/testify/require"
)

func TestManual_AdvanceMovesNow(t *testing.T) {
	start := time.Date(2024, 9, 2, 12, 0, 0, 0, time.UTC)
	c := clock.NewManual(start)

	require.Equal(t, start, c.Now())
	c.Advance(90 * time.Second)
	require.Equal(t, start.Add(90*time.Second), c.Now())
}

func TestManual_TickerFiresPerInterval(t *testing.T) {
	start := time.Date(2024, 9, 2, 12, 0, 0, 0, time.UTC)
	c := clock.NewManual(start)
	ticker := c.NewTicker(time.Second)
	defer ticker.Stop()

	received := make(chan time.Time, 10)
	go func() {
		for at := range ticker.C() {
			received <- at
		}
	}()

	c.Advance(3 * time.Second)

	for i := 1; i <= 3; i++ {
		select {
		case at := <-received:
			require.Equal(t, start.Add(time.Duration(i)*time.Second), at)
		case <-time.After(time.Second):
			t.Fatalf("tick %d not delivered", i)
		}
	}
}

func TestManual_StoppedTickerDoesNotBlockAdvance(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	ticker := c.NewTicker(time.Second)
	ticker.Stop()
	ticker.Stop()

	done := make(chan struct{})
	go func() {
		c.Advance(5 * time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("advance blocked on stopped ticker")
	}
}

func TestManual_NewTickerRejectsNonPositive(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	require.Panics(t, func() { c.NewTicker(0) })
}

func TestSystem_NowIsWallClock(t *testing.T) {
	before := time.Now()
	now := clock.System.Now()
	require.False(t, now.Before(before))
}
