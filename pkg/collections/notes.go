package collections

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/store"
)

// DefaultNoteColor is assigned to new notes.
const DefaultNoteColor = "yellow"

// Note is a free-form note, not scoped to a date.
type Note struct {
	ID        core.ID   `json:"id" validate:"required"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"createdAt"`
	Color     string    `json:"color"`
}

// NotePatch holds the fields to change on a note.
type NotePatch struct {
	Title   *string
	Content *string
	Pinned  *bool
	Color   *string
}

// NoteList is the stored, newest-first sequence of notes.
type NoteList []Note

// Normalize drops notes without an id.
func (l NoteList) Normalize() NoteList {
	out := make(NoteList, 0, len(l))
	for _, n := range l {
		if valid(n) {
			if n.Color == "" {
				n.Color = DefaultNoteColor
			}
			out = append(out, n)
		}
	}
	return out
}

// Notes is the global note collection.
type Notes struct {
	binding *store.Binding[NoteList]
	opts    *options
}

// OpenNotes binds the note collection.
func OpenNotes(ctx context.Context, s *store.Store, opts ...Option) (*Notes, error) {
	b, err := store.Bind(ctx, s, KeyNotes, NoteList{})
	if err != nil {
		return nil, err
	}
	return &Notes{binding: b, opts: buildOptions(opts)}, nil
}

// Binding exposes the underlying binding.
func (c *Notes) Binding() *store.Binding[NoteList] {
	return c.binding
}

// All returns the notes in stored order (newest first).
func (c *Notes) All() []Note {
	return slices.Clone(c.binding.Get())
}

// Get returns the note id.
func (c *Notes) Get(id core.ID) (Note, bool) {
	notes := c.binding.Get()
	i := slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
	if i < 0 {
		return Note{}, false
	}
	return notes[i], true
}

// Display returns the notes matching query, pinned first.
func (c *Notes) Display(query string) []Note {
	return PinnedFirst(Search(c.binding.Get(), query))
}

// Add prepends a note. It is a no-op only when title and content are both blank.
// The title is trimmed; content is kept verbatim.
func (c *Notes) Add(ctx context.Context, title, content string) (Note, bool, error) {
	if blank(title) && blank(content) {
		return Note{}, false, nil
	}
	note := Note{
		ID:        c.opts.newID(),
		Title:     strings.TrimSpace(title),
		Content:   content,
		CreatedAt: c.opts.now(),
		Color:     DefaultNoteColor,
	}
	err := c.binding.Update(ctx, func(prev NoteList) NoteList {
		return append(NoteList{note}, prev...)
	})
	if err != nil {
		return Note{}, false, err
	}
	return note, true, nil
}

// Update merges patch into note id, trimming the title like Add. A patch
// leaving title and content both blank is a no-op.
func (c *Notes) Update(ctx context.Context, id core.ID, patch NotePatch) (bool, error) {
	return c.binding.UpdateIf(ctx, func(prev NoteList) (NoteList, bool) {
		i := slices.IndexFunc(prev, func(n Note) bool { return n.ID == id })
		if i < 0 {
			return prev, false
		}
		updated := prev[i]
		if patch.Title != nil {
			updated.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Content != nil {
			updated.Content = *patch.Content
		}
		if patch.Pinned != nil {
			updated.Pinned = *patch.Pinned
		}
		if patch.Color != nil {
			updated.Color = *patch.Color
		}
		if updated == prev[i] || (blank(updated.Title) && blank(updated.Content)) {
			return prev, false
		}
		next := slices.Clone(prev)
		next[i] = updated
		return next, true
	})
}

// TogglePin flips the pinned flag of note id.
func (c *Notes) TogglePin(ctx context.Context, id core.ID) (bool, error) {
	return c.binding.UpdateIf(ctx, func(prev NoteList) (NoteList, bool) {
		i := slices.IndexFunc(prev, func(n Note) bool { return n.ID == id })
		if i < 0 {
			return prev, false
		}
		next := slices.Clone(prev)
		next[i].Pinned = !next[i].Pinned
		return next, true
	})
}

// Remove deletes note id.
func (c *Notes) Remove(ctx context.Context, id core.ID) (bool, error) {
	return c.binding.UpdateIf(ctx, func(prev NoteList) (NoteList, bool) {
		if !slices.ContainsFunc(prev, func(n Note) bool { return n.ID == id }) {
			return prev, false
		}
		return slices.DeleteFunc(slices.Clone(prev), func(n Note) bool { return n.ID == id }), true
	})
}

// Search returns the notes whose title or content contains query, case-insensitively.
// An empty query matches everything.
func Search(notes []Note, query string) []Note {
	q := strings.ToLower(query)
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}

// PinnedFirst returns notes with pinned ones first, preserving relative order.
func PinnedFirst(notes []Note) []Note {
	out := slices.Clone(notes)
	slices.SortStableFunc(out, func(a, b Note) int {
		switch {
		case a.Pinned == b.Pinned:
			return 0
		case a.Pinned:
			return -1
		default:
			return 1
		}
	})
	return out
}
