// Package species provides the data types and HTTP client for the remote
// species collection.
//
// The collection is a plain REST resource:
//
//	GET    /api/especies        list every species
//	POST   /api/especies        create a species
//	PUT    /api/especies/{id}   replace a species
//	DELETE /api/especies/{id}   delete a species
//
// Any 2xx status is success. Every other status is reported as an *APIError
// without status-specific handling. Transport failures are reported as an
// *APIError whose ErrorCode is "connection_error" (see IsConnectionError).
//
// # Usage
//
//	client := species.NewHTTPClient("http://localhost:8080/api/especies",
//	    species.WithLogger(logger),
//	)
//	items, err := client.List(ctx)
package species
