// Package daycraft is the Composition Root for Day Craft, a personal
// productivity profile: daily tasks, a journal, notes, checklists and a bucket
// list, plus the session of the signed-in user.
//
// Every collection lives under its own key in a durable key-value storage and is
// exposed through a typed Binding. A write persists the new value, publishes it
// and notifies each subscriber exactly once before returning.
//
// Features:
//
//   - **Hexagonal Architecture**: collections depend on the core.Storage port, never on an adapter.
//   - **Pluggable Storage**: one JSON file per key (default), an embedded Badger database, or memory.
//   - **Schema Envelope**: values are stored as {"schema":1,"data":...}; bare legacy JSON is upgraded on write.
//   - **Self-Healing**: corrupted values fall back to their defaults instead of failing.
//   - **Reactive**: Binding.Subscribe, Store.Watch and Store.Follow (changes made by other processes).
//
// Usage:
//
//	app, err := daycraft.Open(ctx, "./profile", daycraft.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	if _, err := app.Session.Login(ctx, "ada@example.com", "secret"); err != nil {
//		return err
//	}
//	task, ok, err := app.Tasks.Add(ctx, collections.Today(nil), "Buy milk")
package daycraft
