// Package web provides a JSON REST front for the record database.
//
// API Endpoints:
//   - GET /records: All records, or those matching ?filter=<clause>
//   - GET /records?id=<id>: One record
//   - POST /records: Create a record; a non-zero "id" in the body inserts under that id
//   - PUT /records?id=<id>: Change the fields named in the body
//   - DELETE /records?id=<id> or ?filter=<clause>: Delete records
//   - GET /metrics: Prometheus metrics
//
// Filters use the shell's where syntax, for example
// ?filter=lastname%20%3D%20'Lee'. Dates travel as MM/dd/yyyy strings.
//
// Errors are returned as {"error": "..."} with 400 for malformed input or
// filters, 404 for unknown ids, 409 for duplicate ids and 422 for records the
// validation policy rejects.
//
// Usage Example:
//
//	app := web.New(db, logger)
//	http.ListenAndServe(":8080", app.Routes())
package web
