// Package catalog loads a dat file (Logiqx, FBNeo or MAME XML) into a
// queryable index and resolves parent/clone/BIOS ancestry.
//
// Types:
//   - Entry: one game/machine record.
//   - Index: the read-only query contract used by the cleaning rules.
//   - Catalog: the in-memory Index built by Parse/Load.
//   - Store: an optional SQLite cache of parsed catalogs.
//
// Lookups are exact and case-sensitive. When several records share a name
// the first one in declaration order wins.
package catalog
