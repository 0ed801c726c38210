package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (memory, postgres) inside this
// directory. Repositories hold SQL or map plumbing only — no business
// logic.
//
// Not-found signaling: FindByID and Update return sql.ErrNoRows when no
// row matches, regardless of backend, so the service layer translates
// not-found uniformly. Delete of a missing row is a no-op.

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
