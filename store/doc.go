/*
Package store provides an in-memory implementation of the KVStore
interfaces defined in the root package, backed by a btree.

MemStore is used as the state store in tests and by any host that keeps
state in memory. CacheWrap provides a scratch-pad of uncommitted writes
on top of any KVStore; handlers run against a cache-wrap and either
Write on success or Discard on failure, which is what gives every
operation its all-or-nothing semantics.
*/
package store
