package thumbnail

import (
	"errors"
	"fmt"
	"time"
	"vincit.fi/gallery-thumbs/api"
	"vincit.fi/gallery-thumbs/api/apitype"
	"vincit.fi/gallery-thumbs/backend/internal/resample"
	"vincit.fi/gallery-thumbs/backend/internal/workerpool"
	"vincit.fi/gallery-thumbs/common/logger"
)

const (
	DefaultBound       = 150
	DefaultConcurrency = workerpool.DefaultThreadCount
	DefaultExtension   = ".jpg"
)

var ErrInvalidBatch = errors.New("invalid batch")

type Generator struct {
	codec       api.Codec
	observer    api.ProgressObserver
	concurrency int
	sourceExt   string
	thumbExt    string
}

type resizedThumbnail struct {
	task   *apitype.ThumbnailTask
	buffer *apitype.PixelBuffer
}

// NewGenerator returns a generator that runs at most concurrency decodes,
// resizes or encodes at once. The observer may be nil.
func NewGenerator(codec api.Codec, concurrency int, observer api.ProgressObserver) *Generator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Generator{
		codec:       codec,
		observer:    observer,
		concurrency: concurrency,
		sourceExt:   DefaultExtension,
		thumbExt:    DefaultExtension,
	}
}

func (s *Generator) SetExtensions(sourceExt string, thumbExt string) {
	s.sourceExt = sourceExt
	s.thumbExt = thumbExt
}

func (s *Generator) Concurrency() int {
	return s.concurrency
}

// GenerateThumbnails reads <inDir>/<name><sourceExt> for every name and writes
// <outDir>/<name><thumbExt>. outDir must already exist.
func (s *Generator) GenerateThumbnails(names []string, inDir string, outDir string, bound int) (*apitype.BatchResult, error) {
	tasks := make([]*apitype.ThumbnailTask, len(names))
	for i, name := range names {
		tasks[i] = apitype.NewThumbnailTaskForDirs(name, inDir, outDir, s.sourceExt, s.thumbExt, bound)
	}
	return s.Generate(tasks)
}

// Generate decodes and resizes every task before any thumbnail is encoded.
// Failures are recorded per task name; the returned error is only set when
// the batch cannot start at all.
func (s *Generator) Generate(tasks []*apitype.ThumbnailTask) (*apitype.BatchResult, error) {
	if err := validateTasks(tasks); err != nil {
		return nil, err
	}

	startTime := time.Now()
	total := len(tasks)
	result := apitype.NewBatchResult()
	if total == 0 {
		logger.Info.Printf("No thumbnails to generate")
		return result, nil
	}

	logger.Info.Printf("Generate thumbnails for %d images...", total)
	logger.Info.Printf(" * Using %d threads", s.concurrency)

	resized := make([]resizedThumbnail, 0, total)
	completed := 0
	workerpool.Run(tasks, s.concurrency, s.decodeAndResize, func(r workerpool.Result[*apitype.PixelBuffer]) {
		completed++
		task := tasks[r.Index]
		if r.Err != nil {
			result.SetFailed(task.Name(), r.Err)
		} else {
			resized = append(resized, resizedThumbnail{task: task, buffer: r.Value})
		}
		s.notify(apitype.DecodeResizePhase, task.Name(), r.Err, completed, total)
	})
	decodeDuration := time.Since(startTime)
	logger.Debug.Printf("Decoded and resized %d/%d images in %s", len(resized), total, decodeDuration)

	encodeStart := time.Now()
	completed = 0
	workerpool.Run(resized, s.concurrency, s.encode, func(r workerpool.Result[apitype.Size]) {
		completed++
		name := resized[r.Index].task.Name()
		if r.Err != nil {
			result.SetFailed(name, r.Err)
		} else {
			result.SetSucceeded(name, r.Value)
		}
		s.notify(apitype.EncodePhase, name, r.Err, completed, len(resized))
	})
	logger.Debug.Printf("Encoded %d thumbnails in %s", len(resized), time.Since(encodeStart))

	d := time.Since(startTime)
	failed := result.Failed()
	logger.Info.Printf("%d thumbnails generated in %s (%d errors)", total-len(failed), d.String(), len(failed))
	if len(failed) > 0 {
		logger.Error.Printf("Errors while generating thumbnails")
		errs := result.Errors()
		for _, name := range failed {
			logger.Error.Printf(" - %s: %s", name, errs[name])
		}
	}

	if succeeded := total - len(failed); succeeded > 0 {
		// Remember to take thread count otherwise the avg time is too small
		avg := d / time.Duration(succeeded) * time.Duration(s.concurrency)
		logger.Info.Printf("  On average: %s/image", avg.String())
	}

	return result, nil
}

func (s *Generator) decodeAndResize(task *apitype.ThumbnailTask) (*apitype.PixelBuffer, error) {
	source, err := s.codec.Decode(task.SourcePath())
	if err != nil {
		return nil, tagError(apitype.ErrDecode, err)
	}

	size, err := apitype.FitWithin(source.Size(), task.TargetBound())
	if err != nil {
		return nil, fmt.Errorf("fit '%s' within %d: %w", task.SourcePath(), task.TargetBound(), err)
	}

	logger.Trace.Printf("Resize '%s' from %s to %s", task.Name(), source.Size(), size)
	return resample.ResizeImage(source, size, apitype.Bilinear)
}

func (s *Generator) encode(thumbnail resizedThumbnail) (apitype.Size, error) {
	if err := s.codec.Encode(thumbnail.buffer, thumbnail.task.OutputPath()); err != nil {
		return apitype.Size{}, tagError(apitype.ErrEncode, err)
	}
	return thumbnail.buffer.Size(), nil
}

func (s *Generator) notify(phase apitype.Phase, name string, err error, completed int, total int) {
	if s.observer == nil {
		return
	}
	outcome := apitype.Succeeded
	if err != nil {
		outcome = apitype.Failed
	}
	s.observer.Observe(&apitype.ProgressEvent{
		Phase:     phase,
		Name:      name,
		Outcome:   outcome,
		Err:       err,
		Completed: completed,
		Total:     total,
	})
}

// tagError makes sure codec errors can be told apart with errors.Is even when
// the codec implementation does not wrap the sentinel itself.
func tagError(sentinel error, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

func validateTasks(tasks []*apitype.ThumbnailTask) error {
	names := map[string]bool{}
	for i, task := range tasks {
		if task == nil {
			return fmt.Errorf("%w: task %d is nil", ErrInvalidBatch, i)
		}
		if task.TargetBound() <= 0 {
			return fmt.Errorf("%w: %d for '%s'", apitype.ErrInvalidBound, task.TargetBound(), task.Name())
		}
		if names[task.Name()] {
			return fmt.Errorf("%w: duplicate name '%s'", ErrInvalidBatch, task.Name())
		}
		names[task.Name()] = true
	}
	return nil
}
