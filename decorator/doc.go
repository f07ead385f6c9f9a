// Package decorator wraps a storage.Store with cross-cutting behavior.
//
// Both wrappers implement storage.Store and forward every call unchanged:
//   - Logged: logs each call's arguments and outcome with zap
//   - Timed: records call durations and outcomes in the metrics package,
//     optionally printing each duration (the shell's -use-stopwatch)
//
// Finder sequences are wrapped lazily; the call is logged or timed when the
// caller finishes iterating.
//
//	var s storage.Store = storage.NewMemoryStore(validation.Default())
//	s = decorator.NewTimed(s, decorator.WithReport(os.Stdout))
//	s = decorator.NewLogged(s, logger)
package decorator
