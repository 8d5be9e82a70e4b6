// Package integrity provides health checks for the collection and the
// infrastructure it depends on.
//
// # Checks Provided
//
//   - Structure: Checks that the upload folders (images/, metadata/, collection/) exist in the storage bucket.
//   - Collection: Lists entries that still block a launch: missing or failed images, unprocessed or unuploaded metadata,
//     template schema violations and template tokens no entry has a field for.
//   - Store: Validates that the database state store table has the columns the store reads and writes.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/collection : Runs collection check.
//   - GET /integrity/store : Runs store schema check.
package integrity
