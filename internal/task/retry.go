package task

import "github.com/phrazzld/wordbank/internal/domain"

// RetryPolicy decides whether a pending job is attempted in the current
// cycle and is told how each attempt ended.
type RetryPolicy interface {
	Allow(job domain.PendingJob) bool
	Failed(job domain.PendingJob, err error)
	Succeeded(job domain.PendingJob)
}

// PollingRetryPolicy attempts every pending job on every cycle, without limit.
// A job that keeps failing is retried once per poll interval until it succeeds.
type PollingRetryPolicy struct{}

var _ RetryPolicy = PollingRetryPolicy{}

func (PollingRetryPolicy) Allow(domain.PendingJob) bool { return true }

func (PollingRetryPolicy) Failed(domain.PendingJob, error) {}

func (PollingRetryPolicy) Succeeded(domain.PendingJob) {}
