// Package repositories implements playlist persistence.
//
// Storage is a single slot holding the whole serialized collection:
//   - [CollectionStore] : load/save contract for the collection slot
//   - [SQLiteStore] : durable slot backed by the migrated slots table
//   - [MemoryStore] : in-process slot for tests and throwaway sessions
//
// [PlaylistRepository] builds the mutation operations on top of a store. It keeps
// nothing between calls; each operation is a full load, change, save cycle, so two
// writers sharing a store can overwrite each other (last save wins).
package repositories
