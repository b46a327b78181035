package fieldflow

// Package fieldflow is the schema-driven runtime engine behind a
// financial-advisory CRM whose data model is a single declarative schema
// tree rather than fixed record types. It provides:
//
// - Validation of arbitrary value trees against the schema (Validate/ValidateObject)
// - Derivation of computed and summary fields from validated values (ApplyComputed)
// - Human-readable structural diffs between two instances of a schema (Diff)
// - Schema-path resolution with discriminated-union and array semantics (Resolve)
//
// Design policy:
// - Schema trees are immutable after construction and shared by reference;
//   derivation functions are attached to nodes at construction time, so there
//   is no shared mutable state and every operation is a pure function.
// - Keep the engine in the root package; put the section completion checker
//   under completion/, catalog loading under catalog/, the record store under
//   store/, and the CLI under cmd/fieldflow.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	res := fieldflow.ValidateObject(schema, doc)
//	if !res.IsValid { render(res.Errors) }
//	persist(res.Value)
//
//	trail := fieldflow.Diff(schema, oldDoc, res.Value)
