// Package types defines the entity kinds managed by hbnb, the storage
// configuration, and the standard error values shared by the store and the
// command interpreter.
//
// Every entity carries the BaseModel identity contract (id, created_at,
// updated_at) plus a declared attribute schema for its kind. Attributes
// outside the schema are kept in an open map so assignment stays permissive.
package types
