// Package timeouts defines shared timeout constants used across front-end
// processes so server and client limits stay discoverable in one place.
package timeouts

import "time"

// APIRequest caps a single REST call to the campaign backend.
const APIRequest = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StreamWrite bounds one websocket frame write to a transcript client.
const StreamWrite = 5 * time.Second
