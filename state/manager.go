package state

// withNewState implements Manager.WithNewState for both strategies.
// The deferred RestoreUntil also runs when body panics.
func withNewState(m Manager, body func() error) error {
	level := m.Level()
	m.Save()
	defer m.RestoreUntil(level)

	return body()
}

// notify calls each listener in registration order.
func notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
