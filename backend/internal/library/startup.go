package library

import (
	"context"
	"vincit.fi/gallery-thumbs/common/logger"
)

// Startup runs the start-up phase of a gallery in the background: thumbnails
// are brought up to date and the index is built once they are done.
type Startup struct {
	service *Service
	ready   chan struct{}
	index   *Index
	report  *Report
	err     error
}

func NewStartup(service *Service) *Startup {
	return &Startup{
		service: service,
		ready:   make(chan struct{}),
	}
}

// Start must be called once.
func (s *Startup) Start(request *Request) {
	go func() {
		defer close(s.ready)

		logger.Info.Printf("Initializing gallery from '%s'", request.InputDir)
		s.report, s.err = s.service.GenerateForDirectory(request)
		if s.err != nil {
			logger.Error.Print("Gallery initialization failed ", s.err)
			return
		}
		s.index = NewIndex(s.report.Names)
		logger.Info.Printf("Done initialization!")
	}()
}

// Ready is closed once the start-up phase has finished, successfully or not.
func (s *Startup) Ready() <-chan struct{} {
	return s.ready
}

// Wait blocks until the start-up phase has finished or ctx is done.
func (s *Startup) Wait(ctx context.Context) (*Index, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.ready:
		return s.index, s.err
	}
}

// Report is nil until Ready is closed.
func (s *Startup) Report() *Report {
	select {
	case <-s.ready:
		return s.report
	default:
		return nil
	}
}
