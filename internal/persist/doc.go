// Package persist loads and saves a store's persisted projection.
//
// A payload is written as a JSON envelope {"state": ..., "version": N}. On
// load the envelope is unwrapped, the state is brought up to the current
// version by the migration chain and then decoded by the store's Schema.
// Any failure along the way discards the stored key and reports a notice;
// callers only ever see "a value" or "no value".
package persist
