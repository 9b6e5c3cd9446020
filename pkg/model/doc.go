// Package model implements the generic data-access layer for the Co'Ride API.
//
// Every resource type shares one Mapper, parameterized on the entity struct
// and configured with a Binding: the table name, the insert/update stored
// procedures, and the columns that may appear in filters. Centralizing the
// filter-to-SQL translation here means every resource gets the same
// injection-safe comparison inference without reimplementing it per
// controller.
//
// # Core Types
//
//   - Mapper: FindAll/FindOne/Save/Delete for one bound entity type
//   - Binding: explicit table and procedure configuration per entity
//   - Filter: ordered column/value pairs, one AND-joined predicate each
//   - RelationStore: junction-table link/unlink plus the related-row join
//   - PassengerStore: atomic passenger seating via the add_passenger procedure
//
// # Filter Semantics
//
// For each filter condition, in specification order:
//
//   - a timestamp column compares by calendar day: date(col) = value
//   - a value that does not parse as an integer matches as a
//     case-insensitive substring: col ILIKE '%value%'
//   - anything else compares exactly: col = value
//
// Values are always bound as statement parameters. Column and table names
// come only from bindings, so identifiers can never be injected.
//
// # Errors
//
// The package surfaces ErrNotFound, ErrConflict and ErrPersistence;
// PostgreSQL driver errors are classified at this boundary and never leak
// upward.
package model
