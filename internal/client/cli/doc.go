// Package cli provides the interactive hack-or-snooze terminal client.
//
// It wires configuration, the local session database, the remote API
// client, the view-state controller and an interactive REPL. Typical flow:
// restore the persisted session, show the story list, start a background
// connectivity watcher and execute user commands.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
