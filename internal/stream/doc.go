// Package stream implements the per-connection telemetry streaming loop for
// the Vital Stream backend.
//
// Each upgraded WebSocket connection gets one session: a loop that generates
// a biometric sample from the session's elapsed time, writes it as a JSON
// text frame and sleeps one tick, until the peer disconnects, a write fails
// or the server shuts down. Sessions share nothing; a sample is produced,
// sent and dropped within a single tick.
package stream
