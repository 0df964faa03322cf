package apitype

import (
	"fmt"
	"path/filepath"
	"sort"
)

type ThumbnailTask struct {
	name        string
	sourcePath  string
	outputPath  string
	targetBound int
}

func NewThumbnailTask(name string, sourcePath string, outputPath string, targetBound int) *ThumbnailTask {
	return &ThumbnailTask{
		name:        name,
		sourcePath:  sourcePath,
		outputPath:  outputPath,
		targetBound: targetBound,
	}
}

// NewThumbnailTaskForDirs follows the <dir>/<name><extension> naming used for
// both the source images and the generated thumbnails.
func NewThumbnailTaskForDirs(name string, inDir string, outDir string, sourceExt string, thumbExt string, targetBound int) *ThumbnailTask {
	return NewThumbnailTask(
		name,
		filepath.Join(inDir, name+sourceExt),
		filepath.Join(outDir, name+thumbExt),
		targetBound)
}

func (s *ThumbnailTask) Name() string {
	return s.name
}

func (s *ThumbnailTask) SourcePath() string {
	return s.sourcePath
}

func (s *ThumbnailTask) OutputPath() string {
	return s.outputPath
}

func (s *ThumbnailTask) TargetBound() int {
	return s.targetBound
}

func (s *ThumbnailTask) String() string {
	return fmt.Sprintf("ThumbnailTask{%s: '%s' -> '%s' (%d)}", s.name, s.sourcePath, s.outputPath, s.targetBound)
}

type Outcome int

const (
	Succeeded Outcome = iota
	Failed
)

func (s Outcome) String() string {
	if s == Succeeded {
		return "succeeded"
	}
	return "failed"
}

type Phase int

const (
	DecodeResizePhase Phase = iota
	EncodePhase
)

func (s Phase) String() string {
	switch s {
	case DecodeResizePhase:
		return "decode+resize"
	case EncodePhase:
		return "encode"
	}
	return fmt.Sprintf("Phase(%d)", int(s))
}

type ItemResult struct {
	Name    string
	Outcome Outcome
	Size    Size
	Err     error
}

// BatchResult maps every task name of a batch to its final outcome.
type BatchResult struct {
	items map[string]*ItemResult
}

func NewBatchResult() *BatchResult {
	return &BatchResult{items: map[string]*ItemResult{}}
}

func (s *BatchResult) SetSucceeded(name string, size Size) {
	s.items[name] = &ItemResult{Name: name, Outcome: Succeeded, Size: size}
}

func (s *BatchResult) SetFailed(name string, err error) {
	s.items[name] = &ItemResult{Name: name, Outcome: Failed, Err: err}
}

func (s *BatchResult) Get(name string) (*ItemResult, bool) {
	item, ok := s.items[name]
	return item, ok
}

func (s *BatchResult) Len() int {
	return len(s.items)
}

// Names are sorted so that reports do not depend on completion order.
func (s *BatchResult) Names() []string {
	names := make([]string, 0, len(s.items))
	for name := range s.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *BatchResult) Succeeded() []string {
	return s.namesWithOutcome(Succeeded)
}

func (s *BatchResult) Failed() []string {
	return s.namesWithOutcome(Failed)
}

func (s *BatchResult) Errors() map[string]error {
	errs := map[string]error{}
	for name, item := range s.items {
		if item.Outcome == Failed {
			errs[name] = item.Err
		}
	}
	return errs
}

func (s *BatchResult) namesWithOutcome(outcome Outcome) []string {
	var names []string
	for _, name := range s.Names() {
		if s.items[name].Outcome == outcome {
			names = append(names, name)
		}
	}
	return names
}

type ProgressEvent struct {
	Phase     Phase
	Name      string
	Outcome   Outcome
	Err       error
	Completed int
	Total     int
}
