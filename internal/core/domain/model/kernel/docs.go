// Package kernel provides the building blocks shared by every warehouse entity.
//
// The package includes:
//   - Audit: the provenance envelope (creation, modification and soft-delete stamps)
//     embedded in every entity, together with the SoftDeletable capability the
//     generic repository works against
//   - Change and ChangeLog: the append-only audit trail each entity records while it
//     mutates and the unit of work persists on commit
//   - UUID: change-set identifiers
//   - Page and Paginated: paging for list queries
//
// Entities never hold references to each other; relations are expressed by id.
package kernel
