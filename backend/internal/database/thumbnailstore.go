package database

import (
	"errors"
	"github.com/upper/db/v4"
	"path/filepath"
	"time"
	"vincit.fi/gallery-thumbs/api/apitype"
	"vincit.fi/gallery-thumbs/common/logger"
)

type ThumbnailStore struct {
	database   *Database
	collection db.Collection
}

func NewThumbnailStore(database *Database) *ThumbnailStore {
	return &ThumbnailStore{
		database: database,
	}
}

func (s *ThumbnailStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("thumbnail")
	}
	return s.collection
}

func (s *ThumbnailStore) getCollectionForSession(session db.Session) db.Collection {
	return session.Collection(s.getCollection().Name())
}

// GetThumbnail returns nil without an error when the output path is unknown.
func (s *ThumbnailStore) GetThumbnail(outputPath string) (*Thumbnail, error) {
	var thumbnail Thumbnail
	err := s.getCollection().Find(db.Cond{"output_path": outputPath}).One(&thumbnail)
	if errors.Is(err, db.ErrNoMoreRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &thumbnail, nil
}

func (s *ThumbnailStore) GetThumbnails(outputDir string) ([]Thumbnail, error) {
	var thumbnails []Thumbnail
	err := s.getCollection().
		Find(db.Cond{"output_dir": outputDir}).
		OrderBy("name").
		All(&thumbnails)
	return thumbnails, err
}

func (s *ThumbnailStore) GetFailedThumbnails(batchId string) ([]Thumbnail, error) {
	var thumbnails []Thumbnail
	err := s.getCollection().
		Find(db.Cond{"batch_id": batchId, "status": ThumbnailFailed}).
		OrderBy("name").
		All(&thumbnails)
	return thumbnails, err
}

// IsUpToDate reports whether the last recorded run for the task produced a
// thumbnail with the same bound from a source with the same modification time.
func (s *ThumbnailStore) IsUpToDate(task *apitype.ThumbnailTask, sourceModified time.Time) (bool, error) {
	thumbnail, err := s.GetThumbnail(task.OutputPath())
	if err != nil || thumbnail == nil {
		return false, err
	}
	return thumbnail.Status == ThumbnailGenerated &&
		thumbnail.Bound == task.TargetBound() &&
		thumbnail.SourceModified == sourceModified.UnixNano(), nil
}

// RecordResults replaces the stored outcome of every task that has an entry
// in result.
func (s *ThumbnailStore) RecordResults(batchId string, tasks []*apitype.ThumbnailTask, result *apitype.BatchResult, sourceModified map[string]time.Time) error {
	start := time.Now()
	err := s.database.DoInTransaction(func(session db.Session) error {
		collection := s.getCollectionForSession(session)
		for _, task := range tasks {
			item, ok := result.Get(task.Name())
			if !ok {
				continue
			}

			if err := collection.Find(db.Cond{"output_path": task.OutputPath()}).Delete(); err != nil {
				logger.Error.Printf("Could not remove old thumbnail record for '%s'", task.Name())
				return err
			}
			if _, err := collection.Insert(toThumbnail(batchId, task, item, sourceModified[task.Name()])); err != nil {
				logger.Error.Printf("Could not add thumbnail record for '%s'", task.Name())
				return err
			}
		}
		return nil
	})
	logger.Trace.Printf(" - Recorded %d thumbnails in %s", result.Len(), time.Since(start))
	return err
}

func toThumbnail(batchId string, task *apitype.ThumbnailTask, item *apitype.ItemResult, sourceModified time.Time) *Thumbnail {
	thumbnail := &Thumbnail{
		Name:           task.Name(),
		OutputDir:      filepath.Dir(task.OutputPath()),
		BatchId:        batchId,
		SourcePath:     task.SourcePath(),
		OutputPath:     task.OutputPath(),
		Bound:          task.TargetBound(),
		SourceModified: sourceModified.UnixNano(),
	}
	if item.Outcome == apitype.Succeeded {
		thumbnail.Status = ThumbnailGenerated
		thumbnail.Width = item.Size.Width()
		thumbnail.Height = item.Size.Height()
	} else {
		thumbnail.Status = ThumbnailFailed
		if item.Err != nil {
			thumbnail.Error = item.Err.Error()
		}
	}
	return thumbnail
}
