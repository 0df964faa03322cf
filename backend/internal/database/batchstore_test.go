package database

import (
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestBatchStore_AddAndFinish(t *testing.T) {
	a := require.New(t)

	sut := NewBatchStore(openTestDatabase(t))
	started := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)

	a.Nil(sut.AddBatch(&Batch{
		Id:          "batch-1",
		SourceDir:   "images",
		OutputDir:   "thumbs",
		Bound:       150,
		Concurrency: 4,
		Started:     started,
	}))

	t.Run("Unfinished", func(t *testing.T) {
		batch, err := sut.GetBatch("batch-1")
		a.Nil(err)
		a.Equal("images", batch.SourceDir)
		a.Equal("thumbs", batch.OutputDir)
		a.Equal(150, batch.Bound)
		a.Equal(4, batch.Concurrency)
		a.True(started.Equal(batch.Started))
		a.Equal(0, batch.Succeeded)
	})

	t.Run("Finished", func(t *testing.T) {
		a.Nil(sut.FinishBatch("batch-1", started.Add(time.Minute), 3, 2, 1))

		batch, err := sut.GetBatch("batch-1")
		a.Nil(err)
		a.Equal(3, batch.Succeeded)
		a.Equal(2, batch.Failed)
		a.Equal(1, batch.Skipped)
		a.True(started.Add(time.Minute).Equal(batch.Finished))
	})
}

func TestBatchStore_GetBatches(t *testing.T) {
	a := require.New(t)

	sut := NewBatchStore(openTestDatabase(t))
	started := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	a.Nil(sut.AddBatch(&Batch{Id: "old", Started: started}))
	a.Nil(sut.AddBatch(&Batch{Id: "new", Started: started.Add(time.Hour)}))

	batches, err := sut.GetBatches()
	a.Nil(err)
	a.Len(batches, 2)
	a.Equal("new", batches[0].Id)
	a.Equal("old", batches[1].Id)
}

func TestBatchStore_UnknownBatch(t *testing.T) {
	a := require.New(t)

	sut := NewBatchStore(openTestDatabase(t))

	_, err := sut.GetBatch("missing")
	a.NotNil(err)
	a.NotNil(sut.FinishBatch("missing", time.Now(), 0, 0, 0))
}
