package api

type Topic string

const (
	ThumbnailProgress Topic = "event-thumbnail-progress"
	BatchFinished     Topic = "event-batch-finished"
	ShowError         Topic = "event-show-error"
)
