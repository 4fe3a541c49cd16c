// Package sanitizer normalizes free-text guest names when name
// normalisation is enabled. Time tokens are never passed through it.
//
// All functions are idempotent: applying them twice yields the same result as applying
// them once. Invalid input is never rejected here; validation happens afterwards.
package sanitizer
