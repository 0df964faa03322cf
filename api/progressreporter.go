package api

import "vincit.fi/gallery-thumbs/api/apitype"

// ProgressObserver receives one event per settled task. Implementations
// must not influence the batch; they only observe it.
type ProgressObserver interface {
	Observe(event *apitype.ProgressEvent)
}

type SenderProgressObserver struct {
	sender Sender

	ProgressObserver
}

func NewSenderProgressObserver(sender Sender) ProgressObserver {
	return &SenderProgressObserver{
		sender: sender,
	}
}

func (s *SenderProgressObserver) Observe(event *apitype.ProgressEvent) {
	s.sender.SendCommandToTopic(ThumbnailProgress, event)
}

// ObserverFunc adapts a plain function into a ProgressObserver.
type ObserverFunc func(event *apitype.ProgressEvent)

func (f ObserverFunc) Observe(event *apitype.ProgressEvent) {
	f(event)
}
