// Package event provides the topic-based event bus that connects the host
// model (configuration store, workspace) to the status bar controller.
//
// # Event Topics
//
// Events use hierarchical topics with dot notation:
//
//	config.changed             - a projectNameInStatusBar setting changed
//	workspace.folders.changed  - the set of workspace folders changed
//	editor.active.changed      - the focused document changed
//
// # Wildcard Patterns
//
// Subscriptions support wildcard patterns:
//
//	workspace.*    - matches workspace.folders (single segment)
//	workspace.**   - matches workspace.folders.changed (multi-segment)
//
// # Delivery
//
// Publish delivers synchronously in the publisher's goroutine. Handlers that
// must run elsewhere (for example on the controller's loop) re-post
// themselves.
//
// # Subscriptions
//
// Every subscription has a unique ID and can be cancelled through
// Bus.Unsubscribe. Unsubscribing twice returns ErrSubscriptionNotFound and
// has no other effect.
package event
