// Package types defines the contact directory entities (Name, Phone, Record,
// Directory), the Store interface used to persist a Directory, and the
// standard error types for the addressbook.
package types
