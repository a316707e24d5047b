// Package models defines the core domain models for the hospital billing service.
//
// # Catalog
//
//   - Item: a billable medical item (registration fee, lab test, medicine, ...)
//   - ItemPatch: a partial update to an Item; nil fields are left untouched
//
// # Ledger
//
//   - Bill: a finalized bill. Its Items are a snapshot of the selected catalog
//     entries at billing time, stored verbatim as a JSON array. They are never
//     re-resolved against the catalog.
//
// # Reporting
//
//   - Statistics: counts and sums derived from both tables on demand
//   - ConnectionInfo: what the store is connected to, for health and status pages
//
// Models carry no JSON or ORM tags. The API layer shapes responses and the
// storage layer owns its own records.
package models
