// Package queryir describes searches over the definition catalog
// independently of how the catalog stores them.
//
//	[tdl search flags] → [queryir.Select] → [querysql] → SQLite
//
// A query selects stored definitions. Predicates compare a definition
// column (Equals), require a declared field (HasField), or combine other
// predicates (And, Or). Select.Latest restricts results to the newest
// definition of each name, which is what LookupTypeDef returns for a
// single name.
//
// Validate reports every problem in a query; backends compile only valid
// queries.
package queryir
