package events_test

import (
	"sync"
	"testing"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishFansOutByType(t *testing.T) {
	bus := events.NewBus()

	var created, all []events.Event
	bus.Subscribe(func(e events.Event) { created = append(created, e) }, events.ValuationCreated)
	bus.Subscribe(func(e events.Event) { all = append(all, e) })

	bus.Publish(events.New(events.ValuationCreated, 1, 10))
	bus.Publish(events.New(events.ValuationDeleted, 1, 10))
	bus.Publish(events.New(events.HistorySaved, 1, 10))

	require.Len(t, created, 1)
	assert.Equal(t, events.ValuationCreated, created[0].Type)
	assert.NotEmpty(t, created[0].ID)
	assert.Len(t, all, 3)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := events.NewBus()
	calls := 0
	unsubscribe := bus.Subscribe(func(events.Event) { calls++ }, events.ValuationDeleted)

	bus.Publish(events.New(events.ValuationDeleted, 1, 1))
	unsubscribe()
	unsubscribe()
	bus.Publish(events.New(events.ValuationDeleted, 1, 1))

	assert.Equal(t, 1, calls)
}

func TestBus_ChannelFiltersByUserAndDrops(t *testing.T) {
	bus := events.NewBus()
	ch, dropped, cancel := bus.Channel(7, 1)
	defer cancel()

	bus.Publish(events.New(events.ValuationCreated, 8, 1))
	bus.Publish(events.New(events.ValuationCreated, 7, 2))
	bus.Publish(events.New(events.ValuationCreated, 7, 3))

	got := <-ch
	assert.Equal(t, int64(2), got.ValuationID)
	assert.Equal(t, 1, dropped())
	assert.Empty(t, ch)
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := events.NewBus()
	var mu sync.Mutex
	count := 0
	bus.Subscribe(func(events.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bus.Publish(events.New(events.HistorySaved, 1, int64(i)))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, count)
}
