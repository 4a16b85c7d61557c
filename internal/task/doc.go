// Package task runs the example generation worker: a single background loop
// that polls the pending job queue, asks the synthesizer for an example for
// each queued word, and records the result while removing the job in one
// transaction.
//
// Jobs are processed one at a time in queue order. A job that fails stays in
// the queue and is attempted again on the next poll cycle. The loop stops
// cooperatively: a CancellationToken is checked at the top of every cycle and
// interrupts the sleep between cycles, but never the job being processed.
package task
