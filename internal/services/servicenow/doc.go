// Package servicenow fetches per-ticket lifecycle facts from the remote
// ticketing API: the request item itself, the closing user's name, and the
// retention-hold label.
//
// Only a failure on the primary request-item lookup drops a ticket; the
// secondary lookups degrade to sentinel values so one flaky endpoint cannot
// empty the result set.
package servicenow
