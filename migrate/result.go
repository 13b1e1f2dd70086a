package migrate

import "time"

// Result is the outcome of one script execution. Consumed immediately by the
// caller to decide the journal update and whether to halt the batch.
type Result struct {
	Script     *Script
	Successful bool
	Err        error
	Message    string
	Duration   time.Duration
}

// BatchResult aggregates the per-script results of one run.
// A cancelled batch reports Successful=false with a cancellation message;
// the scripts applied before cancellation remain applied.
type BatchResult struct {
	Results    []Result
	Successful bool
	Message    string
}

// successResult builds a successful Result for a script.
func successResult(script *Script, duration time.Duration) Result {
	return Result{
		Script:     script,
		Successful: true,
		Duration:   duration,
	}
}

// failedResult builds a failed Result carrying the error and its message.
func failedResult(script *Script, err error, duration time.Duration) Result {
	return Result{
		Script:     script,
		Successful: false,
		Err:        err,
		Message:    err.Error(),
		Duration:   duration,
	}
}

// append records a result on the batch, clearing the success flag on failure.
func (b *BatchResult) append(r Result) {
	b.Results = append(b.Results, r)
	if !r.Successful {
		b.Successful = false
		b.Message = r.Message
	}
}
