package events

// JobChangedTopic is published by the job-management subsystem after a job is
// created, edited or changes publish status. JobDeletedTopic after a delete.
// The index synchronizer subscribes to both; publishers never wait on it.
var (
	JobChangedTopic = "JobChangedEvent"
	JobDeletedTopic = "JobDeletedEvent"
)

type JobChanged struct {
	JobID string
}

type JobDeleted struct {
	JobID string
}
