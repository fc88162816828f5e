// Package sandbox is a local in-memory backend for the species collection.
//
// It serves GET/POST on CollectionPath and PUT/DELETE on CollectionPath/:id
// with the same JSON shapes as the production backend, so the client and the
// UI can be exercised without a database.
package sandbox
