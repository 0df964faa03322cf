package event

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
	"vincit.fi/gallery-thumbs/api"
	"vincit.fi/gallery-thumbs/api/apitype"
)

func TestBroker_SendCommandToTopic(t *testing.T) {
	a := assert.New(t)

	broker := InitBus(10)
	var mux sync.Mutex
	var received []string
	broker.Subscribe(api.ThumbnailProgress, func(event *apitype.ProgressEvent) {
		mux.Lock()
		defer mux.Unlock()
		received = append(received, event.Name)
	})

	for _, name := range []string{"a", "b", "c"} {
		broker.SendCommandToTopic(api.ThumbnailProgress, &apitype.ProgressEvent{Name: name})
	}
	broker.Flush()

	mux.Lock()
	defer mux.Unlock()
	a.Equal([]string{"a", "b", "c"}, received)
}

func TestBroker_SendToTopic(t *testing.T) {
	broker := InitBus(1)
	calls := 0
	broker.Subscribe(api.BatchFinished, func() {
		calls++
	})

	broker.SendToTopic(api.BatchFinished)
	broker.SendToTopic(api.BatchFinished)
	broker.Flush()

	assert.Equal(t, 2, calls)
}

func TestBroker_SendError(t *testing.T) {
	a := assert.New(t)

	broker := InitBus(1)
	var command *api.ErrorCommand
	broker.Subscribe(api.ShowError, func(c *api.ErrorCommand) {
		command = c
	})

	broker.SendError("Could not write thumbnail", errors.New("disk full"))
	broker.Flush()

	if a.NotNil(command) {
		a.Equal("Could not write thumbnail\ndisk full", command.Message)
	}
}

func TestBroker_NoSubscribers(t *testing.T) {
	broker := InitBus(1)
	broker.SendToTopic(api.BatchFinished)
	broker.Flush()
}

func TestBroker_ProgressObserver(t *testing.T) {
	a := assert.New(t)

	broker := InitBus(10)
	var events []*apitype.ProgressEvent
	broker.Subscribe(api.ThumbnailProgress, func(event *apitype.ProgressEvent) {
		events = append(events, event)
	})

	observer := api.NewSenderProgressObserver(broker)
	observer.Observe(&apitype.ProgressEvent{Name: "a", Completed: 1, Total: 2})
	observer.Observe(&apitype.ProgressEvent{Name: "b", Completed: 2, Total: 2})
	broker.Flush()

	a.Len(events, 2)
	a.Equal(2, events[1].Completed)
}
