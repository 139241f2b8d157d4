// Package collections implements the Day Craft entity collections: daily tasks,
// journal entries, notes, checklists, the bucket list and the theme preference.
//
// Each collection is a schema layered on a store.Binding. Mutators never modify
// a previously read value; they compute a fresh copy and hand it to the binding,
// which persists and publishes it. Validation failures (blank text, bad dates,
// unknown categories) are no-ops reported through an ok flag, never as errors;
// errors are reserved for storage failures.
//
// Filtering, search, pinned-first ordering and category grouping are pure
// projections recomputed on read and never persisted.
package collections

// Storage keys, one collection per key.
const (
	KeyTasks      = "daily_tasks"
	KeyJournal    = "journal_entries"
	KeyNotes      = "notes"
	KeyChecklists = "checklists"
	KeyBucketList = "bucket_list"
	KeyTheme      = "theme"
)
