// Package app provides the orchestration layer for knurl.
//
// It is the composition root: persisted settings are loaded and overridden
// by flags, then handed to the UI, which constructs the synchronization
// engine and the real speaker client. Business logic lives in the domain
// packages (engine, speaker, settings, ui); this package only connects them.
package app
