package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gametimer/internal/core/model"
	"gametimer/internal/core/registry"
)

func TestTickerSchedulerDispatchesUntilCancelled(t *testing.T) {
	queue := make(chan func(), 16)
	scheduler := NewTickerScheduler(func(fn func()) { queue <- fn })

	ticks := 0
	cancel := scheduler.Every(5*time.Millisecond, func() { ticks++ })

	for ticks < 3 {
		select {
		case fn := <-queue:
			fn()
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for tick")
		}
	}
	cancel()
	cancel()
	require.GreaterOrEqual(t, ticks, 3)
}

func TestTimeKeeperWithTickerScheduler(t *testing.T) {
	queue := make(chan func(), 16)
	activities := registry.New(&recordingStore{}, nil)
	keeper := New(activities, model.EngineConfig{TickInterval: 2 * time.Millisecond, SaveEvery: 10}, Options{
		Scheduler: NewTickerScheduler(func(fn func()) { queue <- fn }),
	})
	_, err := keeper.AddActivity("Go")
	require.NoError(t, err)
	require.NoError(t, keeper.Start())

	deadline := time.After(2 * time.Second)
	for keeper.Total() < 5 {
		select {
		case fn := <-queue:
			fn()
		case <-deadline:
			t.Fatal("timed out waiting for ticks")
		}
	}
	require.NoError(t, keeper.Pause())
	paused := keeper.Total()

	drain := time.After(20 * time.Millisecond)
	for {
		select {
		case fn := <-queue:
			fn()
			continue
		case <-drain:
		}
		break
	}
	require.Equal(t, paused, keeper.Total())
}
