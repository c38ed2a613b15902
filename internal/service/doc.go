// Package service contains the application use cases. Services coordinate
// domain entities and the store interfaces; they never depend on a concrete
// database implementation.
//
// Batch operations fan their per-item work out through internal/batch, so a
// failure on one id is reported in that id's outcome instead of failing the
// whole request.
package service
