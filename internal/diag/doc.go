// Package diag reports the health of the backend's optional database
// dependency for the /test endpoint. The probe never fails the request:
// every outcome, including a missing or unreachable database, is reported
// as field values in the diagnostic payload.
package diag
