// Package speaker implements the HTTP client for a network speaker's
// volume/mute control API and defines the Controller interface the
// synchronization engine depends on. Each call is an independent round trip
// with a fixed timeout; failures are plain errors for the caller to handle.
package speaker
