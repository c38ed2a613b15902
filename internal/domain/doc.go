// Package domain holds the extraction entity and its validation rules,
// independent of storage and transport.
package domain
