// Package middleware groups the Fiber middleware mounted by the start command.
//
//   - rayid: assigns every request an id (X-Ray-ID header and Fiber locals).
//   - auth: checks the X-API-Key header when an API key is configured. Paths
//     such as /swagger and /metrics can be skipped.
//
// rayid is mounted first so rejected requests are still traceable in logs.
package middleware
