package database

type migration struct {
	id          MigrationId
	description string
	query       string
}

var migrations = []migration{
	{
		id:          0,
		description: "Batch and thumbnail tables",
		query: `
			CREATE TABLE batch (
			    id TEXT PRIMARY KEY,
			    source_dir TEXT,
			    output_dir TEXT,
			    bound INT,
			    concurrency INT,
			    started_timestamp DATETIME,
			    finished_timestamp DATETIME,
			    succeeded INT,
			    failed INT,
			    skipped INT
			);

			CREATE INDEX batch_started_timestamp_idx ON batch (started_timestamp);

			CREATE TABLE thumbnail (
			    name TEXT,
			    output_dir TEXT,
			    batch_id TEXT,
			    source_path TEXT,
			    output_path TEXT,
			    bound INT,
			    width INT,
			    height INT,
			    source_modified INT,
			    status INT,
			    error TEXT,

			    FOREIGN KEY(batch_id) REFERENCES batch(id) ON DELETE CASCADE,
			    UNIQUE (output_path)
			);

			CREATE INDEX thumbnail_output_dir_idx ON thumbnail (output_dir, name);
			CREATE INDEX thumbnail_batch_idx ON thumbnail (batch_id);
		`,
	},
}
