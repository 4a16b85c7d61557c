package domain

// PendingJob marks a word as awaiting example generation. At most one job
// exists per word; the job is removed in the same transaction that stores
// the word's example.
type PendingJob struct {
	ID   int64 `json:"id"`
	Word Word  `json:"word"`
}

// WordID returns the ID of the word the job refers to.
func (j PendingJob) WordID() int64 {
	return j.Word.ID
}
