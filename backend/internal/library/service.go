package library

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"vincit.fi/gallery-thumbs/api"
	"vincit.fi/gallery-thumbs/api/apitype"
	"vincit.fi/gallery-thumbs/backend/internal/codec"
	"vincit.fi/gallery-thumbs/backend/internal/database"
	"vincit.fi/gallery-thumbs/backend/internal/thumbnail"
	"vincit.fi/gallery-thumbs/backend/internal/util"
	"vincit.fi/gallery-thumbs/common/logger"
)

type Request struct {
	InputDir  string
	OutputDir string
	SourceExt string
	ThumbExt  string
	Bound     int
	Force     bool
}

type Report struct {
	BatchId string
	Names   []string
	Skipped []string
	Result  *apitype.BatchResult
}

// Service keeps the thumbnails of a directory up to date and records every
// run in the catalog.
type Service struct {
	generator      *thumbnail.Generator
	provisioner    api.DirectoryProvisioner
	batchStore     *database.BatchStore
	thumbnailStore *database.ThumbnailStore
	sender         api.Sender
}

func NewService(generator *thumbnail.Generator, provisioner api.DirectoryProvisioner,
	batchStore *database.BatchStore, thumbnailStore *database.ThumbnailStore, sender api.Sender) *Service {
	return &Service{
		generator:      generator,
		provisioner:    provisioner,
		batchStore:     batchStore,
		thumbnailStore: thumbnailStore,
		sender:         sender,
	}
}

// GenerateForDirectory scans the input directory and generates thumbnails
// for every image that does not have an up to date one.
func (s *Service) GenerateForDirectory(request *Request) (*Report, error) {
	if request.Bound <= 0 {
		return nil, fmt.Errorf("%w: %d", apitype.ErrInvalidBound, request.Bound)
	}
	if !codec.IsSupported(request.ThumbExt) {
		return nil, fmt.Errorf("%w: no encoder for '%s'", apitype.ErrEncode, request.ThumbExt)
	}
	names, err := ScanNames(request.InputDir, request.SourceExt)
	if err != nil {
		return nil, err
	}
	if err := s.provisioner.EnsureDir(request.OutputDir); err != nil {
		return nil, err
	}

	report := &Report{
		BatchId: uuid.New().String(),
		Names:   names,
	}

	var tasks []*apitype.ThumbnailTask
	sourceModified := map[string]time.Time{}
	for _, name := range names {
		task := apitype.NewThumbnailTaskForDirs(name, request.InputDir, request.OutputDir,
			request.SourceExt, request.ThumbExt, request.Bound)
		if info, err := os.Stat(task.SourcePath()); err == nil {
			sourceModified[name] = info.ModTime()
		}

		if !request.Force && s.isUpToDate(task, sourceModified[name]) {
			report.Skipped = append(report.Skipped, name)
		} else {
			tasks = append(tasks, task)
		}
	}
	logger.Info.Printf("Batch %s: %d images, %d up to date", report.BatchId, len(names), len(report.Skipped))

	started := time.Now()
	if err := s.batchStore.AddBatch(&database.Batch{
		Id:          report.BatchId,
		SourceDir:   request.InputDir,
		OutputDir:   request.OutputDir,
		Bound:       request.Bound,
		Concurrency: s.generator.Concurrency(),
		Started:     started,
	}); err != nil {
		return nil, err
	}

	result, err := s.generator.Generate(tasks)
	if err != nil {
		return nil, err
	}
	report.Result = result

	if err := s.thumbnailStore.RecordResults(report.BatchId, tasks, result, sourceModified); err != nil {
		logger.Error.Print("Could not record thumbnails ", err)
		return nil, err
	}
	succeeded := len(result.Succeeded())
	failed := len(result.Failed())
	if err := s.batchStore.FinishBatch(report.BatchId, time.Now(), succeeded, failed, len(report.Skipped)); err != nil {
		logger.Error.Print("Could not finish batch ", err)
		return nil, err
	}

	if s.sender != nil {
		s.sender.SendCommandToTopic(api.BatchFinished, &api.BatchFinishedCommand{
			BatchId:   report.BatchId,
			Succeeded: succeeded,
			Failed:    failed,
			Skipped:   len(report.Skipped),
		})
	}
	return report, nil
}

func (s *Service) isUpToDate(task *apitype.ThumbnailTask, sourceModified time.Time) bool {
	if sourceModified.IsZero() || !util.DoesFileExist(task.OutputPath()) {
		return false
	}
	upToDate, err := s.thumbnailStore.IsUpToDate(task, sourceModified)
	if err != nil {
		logger.Warn.Printf("Could not check thumbnail of '%s': %s", task.Name(), err)
		return false
	}
	return upToDate
}
