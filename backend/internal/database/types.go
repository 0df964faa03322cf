package database

import "time"

type MigrationId int64

type Migration struct {
	Id MigrationId `db:"id"`
}

type Batch struct {
	Id          string    `db:"id"`
	SourceDir   string    `db:"source_dir"`
	OutputDir   string    `db:"output_dir"`
	Bound       int       `db:"bound"`
	Concurrency int       `db:"concurrency"`
	Started     time.Time `db:"started_timestamp"`
	Finished    time.Time `db:"finished_timestamp"`
	Succeeded   int       `db:"succeeded"`
	Failed      int       `db:"failed"`
	Skipped     int       `db:"skipped"`
}

const (
	ThumbnailGenerated = 1
	ThumbnailFailed    = 2
)

// Thumbnail is the latest known outcome for one output file. SourceModified
// is the source modification time in Unix nanoseconds.
type Thumbnail struct {
	Name           string `db:"name"`
	OutputDir      string `db:"output_dir"`
	BatchId        string `db:"batch_id"`
	SourcePath     string `db:"source_path"`
	OutputPath     string `db:"output_path"`
	Bound          int    `db:"bound"`
	Width          int    `db:"width"`
	Height         int    `db:"height"`
	SourceModified int64  `db:"source_modified"`
	Status         int    `db:"status"`
	Error          string `db:"error"`
}
