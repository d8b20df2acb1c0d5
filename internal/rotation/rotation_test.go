package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextWrapsAroundAfterLengthSteps(t *testing.T) {
	t.Parallel()

	for length := 1; length <= 6; length++ {
		for start := 0; start < length; start++ {
			e := NewEngine(length)
			_, ok := e.GoTo(start)
			require.True(t, ok)
			for i := 0; i < length; i++ {
				e.Next()
			}
			require.Equal(t, start, e.Index(), "length=%d start=%d", length, start)
		}
	}
}

func TestPrevInvertsNext(t *testing.T) {
	t.Parallel()

	e := NewEngine(3)
	require.Equal(t, 2, e.Prev())
	require.Equal(t, 0, e.Next())
	for start := 0; start < 3; start++ {
		e.GoTo(start)
		e.Next()
		require.Equal(t, start, e.Prev())
	}
}

func TestGoToIgnoresOutOfRange(t *testing.T) {
	t.Parallel()

	e := NewEngine(3)
	e.GoTo(1)
	for _, i := range []int{-1, 3, 99} {
		idx, ok := e.GoTo(i)
		require.False(t, ok)
		require.Equal(t, 1, idx)
	}
	require.Equal(t, 1, e.Advance(None))
}

func TestEmptySequenceIsInert(t *testing.T) {
	t.Parallel()

	e := NewEngine(0, WithPeriod(time.Millisecond))
	require.Equal(t, 0, e.Next())
	require.Equal(t, 0, e.Prev())
	_, ok := e.GoTo(0)
	require.False(t, ok)

	e.Start()
	require.Nil(t, e.task)
	e.Stop()
}

func TestSetLengthResetsIndex(t *testing.T) {
	t.Parallel()

	e := NewEngine(4)
	e.GoTo(3)
	e.SetLength(4)
	require.Equal(t, 3, e.Index())
	e.SetLength(2)
	require.Equal(t, 0, e.Index())
	require.Equal(t, 2, e.Len())
}

func TestTimerAdvancesIndependentlyOfManualMoves(t *testing.T) {
	t.Parallel()

	changes := make(chan int, 64)
	e := NewEngine(3, WithPeriod(5*time.Millisecond), WithOnChange(func(i int) {
		select {
		case changes <- i:
		default:
		}
	}))
	e.Start()
	t.Cleanup(e.Stop)

	e.GoTo(2)
	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("expected automatic advance")
	}
	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("timer stopped after manual navigation")
	}
}

func TestSetLengthZeroStopsTimer(t *testing.T) {
	t.Parallel()

	e := NewEngine(2, WithPeriod(time.Millisecond))
	e.Start()
	e.SetLength(0)
	require.Nil(t, e.task)
	require.Equal(t, 0, e.Index())
}
