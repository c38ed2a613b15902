package batch

import "errors"

// Values returns the successful values in input order, or nil and the joined
// item errors if any outcome did not succeed. It is the "fail the whole call"
// policy for callers that cannot use partial results.
func Values[R any](outcomes []Outcome[R]) ([]R, error) {
	if err := Errors(outcomes); err != nil {
		return nil, err
	}
	values := make([]R, len(outcomes))
	for i, o := range outcomes {
		values[i] = o.Value
	}
	return values, nil
}

// Errors joins an *ItemError for every outcome that failed or was cancelled.
// It returns nil when every outcome succeeded.
func Errors[R any](outcomes []Outcome[R]) error {
	var errs []error
	for _, o := range outcomes {
		if o.OK() {
			continue
		}
		err := o.Err
		if err == nil {
			err = errors.New(o.Status.String())
		}
		errs = append(errs, &ItemError{Index: o.Index, Err: err})
	}
	return errors.Join(errs...)
}

// Count tallies outcomes by status.
func Count[R any](outcomes []Outcome[R]) (succeeded, failed, cancelled int) {
	for _, o := range outcomes {
		switch o.Status {
		case StatusSucceeded:
			succeeded++
		case StatusFailed:
			failed++
		case StatusCancelled:
			cancelled++
		}
	}
	return succeeded, failed, cancelled
}
