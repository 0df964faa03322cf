package cmd

import (
	"os"

	"github.com/schollz/progressbar/v3"
	"vincit.fi/gallery-thumbs/api/apitype"
)

// progressView draws one bar per pipeline phase. It is only called from the
// event bus goroutine.
type progressView struct {
	bar   *progressbar.ProgressBar
	phase apitype.Phase
}

func newProgressView() *progressView {
	return &progressView{}
}

func (s *progressView) onProgress(event *apitype.ProgressEvent) {
	if s.bar == nil || s.phase != event.Phase {
		s.finish()
		s.phase = event.Phase
		s.bar = progressbar.NewOptions(event.Total,
			progressbar.OptionSetDescription(event.Phase.String()),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
		)
	}
	_ = s.bar.Set(event.Completed)
}

func (s *progressView) finish() {
	if s.bar != nil {
		_ = s.bar.Finish()
		s.bar = nil
	}
}
