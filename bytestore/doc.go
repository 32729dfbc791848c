// Package bytestore presents one on-disk file as a randomly addressable byte
// sequence with same-length overwrites held in memory until committed.
//
// Reads go through a fixed-capacity LRU cache of pages holding unmodified disk
// bytes; pending edits are overlaid on top of whatever the pages return and are
// never written into a page. Commit writes the pending runs in ascending offset
// order and stops at the first failure without rolling back earlier runs.
//
// A Store is safe for concurrent use. Mutating operations (Write, Commit,
// Reload, DiscardEdits) are serialized; reads share the lock and collapse
// concurrent loads of the same page.
package bytestore
