// Package logging provides the structured logging interface of parsum and its
// zerolog implementation. Components depend on Logger, so tests can pass Nop
// and the command passes the console logger built by NewLogger.
//
// The reduction core (packages partition and reduce) never logs; logging
// happens in the orchestration and application layers around it.
package logging
