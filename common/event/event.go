package event

import (
	"fmt"
	messagebus "github.com/vardius/message-bus"
	"reflect"
	"sync"
	"vincit.fi/gallery-thumbs/api"
	"vincit.fi/gallery-thumbs/common/logger"
)

type Broker struct {
	bus         messagebus.MessageBus
	mux         sync.Mutex
	subscribers map[api.Topic]int
	pending     sync.WaitGroup

	api.Sender
}

func InitBus(queueSize int) *Broker {
	return &Broker{
		bus:         messagebus.New(queueSize),
		subscribers: map[api.Topic]int{},
	}
}

// Subscribe registers fn for topic. fn is called on a goroutine owned by the
// bus, in publish order, with the arguments given to the Send functions.
func (s *Broker) Subscribe(topic api.Topic, fn interface{}) {
	callback := reflect.ValueOf(fn)
	if callback.Kind() != reflect.Func {
		logger.Error.Panicf("Subscriber for '%s' is not a function", topic)
	}

	tracked := reflect.MakeFunc(callback.Type(), func(args []reflect.Value) []reflect.Value {
		defer s.pending.Done()
		logger.Trace.Printf("Calling topic '%s' with %d arguments", topic, len(args))
		return callback.Call(args)
	})

	s.mux.Lock()
	defer s.mux.Unlock()
	if err := s.bus.Subscribe(string(topic), tracked.Interface()); err != nil {
		logger.Error.Panic("Could not subscribe")
	}
	s.subscribers[topic]++
}

// Flush blocks until every message published so far has been handled.
func (s *Broker) Flush() {
	s.pending.Wait()
}

func (s *Broker) SendToTopic(topic api.Topic) {
	logger.Trace.Printf("Sending to '%s'", topic)
	s.publish(topic)
}

func (s *Broker) SendCommandToTopic(topic api.Topic, command interface{}) {
	logger.Trace.Printf("Sending command to '%s'", topic)
	s.publish(topic, command)
}

func (s *Broker) SendError(message string, err error) {
	formattedMessage := ""
	if err != nil {
		formattedMessage = fmt.Sprintf("%s\n%s", message, err.Error())
	} else {
		formattedMessage = message
	}
	logger.Error.Printf("Error: %s", formattedMessage)
	s.SendCommandToTopic(api.ShowError, &api.ErrorCommand{Message: formattedMessage})
}

func (s *Broker) publish(topic api.Topic, args ...interface{}) {
	s.mux.Lock()
	subscribers := s.subscribers[topic]
	s.mux.Unlock()

	s.pending.Add(subscribers)
	s.bus.Publish(string(topic), args...)
}
