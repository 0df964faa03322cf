package api

type Sender interface {
	SendToTopic(topic Topic)
	SendCommandToTopic(topic Topic, command interface{})
	SendError(message string, err error)
}

type ErrorCommand struct {
	Message string
}

type BatchFinishedCommand struct {
	BatchId   string
	Succeeded int
	Failed    int
	Skipped   int
}
