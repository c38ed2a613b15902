// Package batch runs a caller-supplied operation over a list of items with a
// cap on how many operations are in flight at once.
//
// Results come back as a slice of Outcome values aligned positionally with the
// input, regardless of the order in which operations complete. A failing item
// never aborts the batch: its error is captured in its own Outcome and the
// caller decides whether to treat it as a hard or a soft failure.
//
//	outcomes, err := batch.Execute(ctx, ids, 5, func(ctx context.Context, id uuid.UUID) (*domain.Extraction, error) {
//	    return store.GetByID(ctx, id)
//	})
//	if err != nil {
//	    return err // invalid configuration, nothing ran
//	}
//	for _, o := range outcomes {
//	    if !o.OK() {
//	        log.Warn("item failed", "index", o.Index, "error", o.Err)
//	    }
//	}
//
// Execute only returns an error when the batch cannot be started at all
// (ErrInvalidConfiguration). Use Values or Errors to collapse outcomes when a
// single failure should fail the whole call.
package batch
