package activities

import (
	"inactivity-reminder/email"
	"inactivity-reminder/store"
)

// Activities is the receiver for all activity methods. Using a struct allows
// Temporal to auto-discover and register all methods via RegisterActivity(a),
// and carries the injected collaborators (notification log, user directory,
// suppression list, email dispatcher) that each activity reaches through the
// receiver. Tests swap these fields for fakes to avoid real side effects.
type Activities struct {
	Records     store.NotificationRecordStore
	Directory   store.UserDirectory
	Suppression store.SuppressionList
	Dispatcher  email.Dispatcher
	Renderer    *email.Renderer
}
