/*
Package orm provides an easy to use db wrapper.

A ModelBucket stores entities of a single type under a common key
prefix and takes care of serialization, validation and sequence based
primary keys. It operates directly on the KVStore.
*/
package orm
