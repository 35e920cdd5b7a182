// Package audit implements the session audit trail for the Vital Stream backend.
//
// Each streaming session writes an append-only JSONL record on open and on
// close, carrying the session id, remote address, samples delivered and the
// close reason.
package audit
