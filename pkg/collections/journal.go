package collections

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/aretw0/daycraft/pkg/store"
)

// Mood is the feeling attached to a journal entry.
type Mood string

const (
	MoodNeutral Mood = "neutral"
	MoodHappy   Mood = "😊"
	MoodMeh     Mood = "😐"
	MoodSad     Mood = "😔"
	MoodAngry   Mood = "😡"
	MoodTired   Mood = "😴"
	MoodExcited Mood = "🤩"
)

// Moods lists the selectable moods in display order.
var Moods = []Mood{MoodHappy, MoodMeh, MoodSad, MoodAngry, MoodTired, MoodExcited}

// JournalEntry is the single entry of one day.
type JournalEntry struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []string `json:"images"` // image data URIs
	Mood    Mood     `json:"mood"`
}

// BlankEntry is the entry shown for a day without one.
func BlankEntry() JournalEntry {
	return JournalEntry{Images: []string{}, Mood: MoodNeutral}
}

// WithImage returns a copy with uri appended. Only image data URIs are accepted.
func (e JournalEntry) WithImage(uri string) (JournalEntry, bool) {
	if !strings.HasPrefix(uri, "data:image/") {
		return e, false
	}
	e.Images = append(slices.Clone(e.Images), uri)
	return e, true
}

// WithoutImage returns a copy without the image at index i.
func (e JournalEntry) WithoutImage(i int) JournalEntry {
	if i < 0 || i >= len(e.Images) {
		return e
	}
	e.Images = slices.Delete(slices.Clone(e.Images), i, i+1)
	return e
}

// WithMood returns a copy with mood m.
func (e JournalEntry) WithMood(m Mood) JournalEntry {
	e.Mood = m
	return e
}

// Equal reports whether two entries hold the same data.
func (e JournalEntry) Equal(o JournalEntry) bool {
	return e.Title == o.Title && e.Content == o.Content && e.Mood == o.Mood && slices.Equal(e.Images, o.Images)
}

func (e JournalEntry) normalized() JournalEntry {
	if e.Mood == "" {
		e.Mood = MoodNeutral
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	return e
}

// JournalBook maps a date key to its entry.
type JournalBook map[string]JournalEntry

// Normalize drops malformed date keys and fills defaults.
func (b JournalBook) Normalize() JournalBook {
	out := make(JournalBook, len(b))
	for day, e := range b {
		if IsDay(day) {
			out[day] = e.normalized()
		}
	}
	return out
}

// Journal is the date-keyed journal collection.
type Journal struct {
	binding *store.Binding[JournalBook]
}

// OpenJournal binds the journal collection.
func OpenJournal(ctx context.Context, s *store.Store) (*Journal, error) {
	b, err := store.Bind(ctx, s, KeyJournal, JournalBook{})
	if err != nil {
		return nil, err
	}
	return &Journal{binding: b}, nil
}

// Binding exposes the underlying binding.
func (j *Journal) Binding() *store.Binding[JournalBook] {
	return j.binding
}

// Get returns the stored entry of day.
func (j *Journal) Get(day string) (JournalEntry, bool) {
	e, ok := j.binding.Get()[day]
	return e, ok
}

// Entry returns the entry of day, or a blank one.
func (j *Journal) Entry(day string) JournalEntry {
	if e, ok := j.Get(day); ok {
		return e
	}
	return BlankEntry()
}

// Dates returns the days holding an entry, oldest first.
func (j *Journal) Dates() []string {
	days := slices.Collect(maps.Keys(j.binding.Get()))
	sort.Strings(days)
	return days
}

// Save upserts the entry of day (last write wins). Saving an identical entry
// is a no-op; a malformed day is a no-op.
func (j *Journal) Save(ctx context.Context, day string, entry JournalEntry) (bool, error) {
	if !IsDay(day) {
		return false, nil
	}
	entry = entry.normalized()
	entry.Images = slices.Clone(entry.Images)
	return j.binding.UpdateIf(ctx, func(prev JournalBook) (JournalBook, bool) {
		if cur, ok := prev[day]; ok && cur.Equal(entry) {
			return prev, false
		}
		next := maps.Clone(prev)
		if next == nil {
			next = JournalBook{}
		}
		next[day] = entry
		return next, true
	})
}

// Remove deletes the entry of day.
func (j *Journal) Remove(ctx context.Context, day string) (bool, error) {
	return j.binding.UpdateIf(ctx, func(prev JournalBook) (JournalBook, bool) {
		if _, ok := prev[day]; !ok {
			return prev, false
		}
		next := maps.Clone(prev)
		delete(next, day)
		return next, true
	})
}
