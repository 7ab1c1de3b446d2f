// Package reduce contains the core abstractions of the Sif reduction engine, which
// maintains per-group aggregates under incremental insertion and retraction of rows.
// This root package defines the reducer contracts (ReducerImpl, UnaryReducerImpl,
// SemigroupReducerImpl), their type-erased Strategy forms, and the Accumulator
// interface. Concrete reducers live in the reducers package.
package reduce
