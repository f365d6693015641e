// Package types defines the shared vocabulary of the part search engine:
// catalog part records, per-user search history records, derived user
// profiles, and the assembled search result returned to callers.
//
// All types here are plain values with no behavior beyond validation.
// They are created by collaborators (catalog providers, the session store)
// and never mutated after construction.
package types
