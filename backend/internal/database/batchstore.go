package database

import (
	"github.com/upper/db/v4"
	"time"
	"vincit.fi/gallery-thumbs/common/logger"
)

type BatchStore struct {
	database   *Database
	collection db.Collection
}

func NewBatchStore(database *Database) *BatchStore {
	return &BatchStore{
		database: database,
	}
}

func (s *BatchStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("batch")
	}
	return s.collection
}

func (s *BatchStore) AddBatch(batch *Batch) error {
	logger.Debug.Printf("Adding batch %s", batch.Id)
	_, err := s.getCollection().Insert(batch)
	return err
}

func (s *BatchStore) FinishBatch(batchId string, finished time.Time, succeeded int, failed int, skipped int) error {
	batch, err := s.GetBatch(batchId)
	if err != nil {
		return err
	}
	batch.Finished = finished
	batch.Succeeded = succeeded
	batch.Failed = failed
	batch.Skipped = skipped

	logger.Debug.Printf("Finishing batch %s: %d succeeded, %d failed, %d skipped", batchId, succeeded, failed, skipped)
	return s.getCollection().Find(db.Cond{"id": batchId}).Update(batch)
}

func (s *BatchStore) GetBatch(batchId string) (*Batch, error) {
	var batch Batch
	if err := s.getCollection().Find(db.Cond{"id": batchId}).One(&batch); err != nil {
		return nil, err
	} else {
		return &batch, nil
	}
}

// GetBatches returns the batches newest first.
func (s *BatchStore) GetBatches() ([]Batch, error) {
	var batches []Batch
	err := s.getCollection().Find().OrderBy("-started_timestamp").All(&batches)
	return batches, err
}
