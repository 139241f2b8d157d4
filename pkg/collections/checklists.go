package collections

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/store"
)

// ChecklistItem is an entry embedded in a checklist.
type ChecklistItem struct {
	ID        core.ID `json:"id" validate:"required"`
	Text      string  `json:"text" validate:"required"`
	Completed bool    `json:"completed"`
}

// ItemPatch holds the fields to change on a checklist item.
type ItemPatch struct {
	Text      *string
	Completed *bool
}

// Checklist owns its items; removing it removes them.
type Checklist struct {
	ID        core.ID         `json:"id" validate:"required"`
	Title     string          `json:"title" validate:"required"`
	Items     []ChecklistItem `json:"items"`
	Color     string          `json:"color"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Progress reports completion of the items.
func (l Checklist) Progress() Progress {
	return progressOf(l.Items, func(it ChecklistItem) bool { return it.Completed })
}

// ChecklistList is the stored, newest-first sequence of checklists.
type ChecklistList []Checklist

// Normalize drops invalid checklists and invalid items.
func (l ChecklistList) Normalize() ChecklistList {
	out := make(ChecklistList, 0, len(l))
	for _, c := range l {
		if !valid(c) {
			continue
		}
		items := make([]ChecklistItem, 0, len(c.Items))
		for _, it := range c.Items {
			if valid(it) {
				items = append(items, it)
			}
		}
		c.Items = items
		out = append(out, c)
	}
	return out
}

// Checklists is the global checklist collection.
type Checklists struct {
	binding *store.Binding[ChecklistList]
	opts    *options
}

// OpenChecklists binds the checklist collection.
func OpenChecklists(ctx context.Context, s *store.Store, opts ...Option) (*Checklists, error) {
	b, err := store.Bind(ctx, s, KeyChecklists, ChecklistList{})
	if err != nil {
		return nil, err
	}
	return &Checklists{binding: b, opts: buildOptions(opts)}, nil
}

// Binding exposes the underlying binding.
func (c *Checklists) Binding() *store.Binding[ChecklistList] {
	return c.binding
}

// All returns the checklists, newest first.
func (c *Checklists) All() []Checklist {
	return slices.Clone(c.binding.Get())
}

// Get returns checklist id.
func (c *Checklists) Get(id core.ID) (Checklist, bool) {
	lists := c.binding.Get()
	i := slices.IndexFunc(lists, func(l Checklist) bool { return l.ID == id })
	if i < 0 {
		return Checklist{}, false
	}
	return lists[i], true
}

// Create prepends an empty checklist. A blank title is a no-op.
func (c *Checklists) Create(ctx context.Context, title string) (Checklist, bool, error) {
	if blank(title) {
		return Checklist{}, false, nil
	}
	list := Checklist{
		ID:        c.opts.newID(),
		Title:     strings.TrimSpace(title),
		Items:     []ChecklistItem{},
		Color:     c.opts.color(),
		CreatedAt: c.opts.now(),
	}
	err := c.binding.Update(ctx, func(prev ChecklistList) ChecklistList {
		return append(ChecklistList{list}, prev...)
	})
	if err != nil {
		return Checklist{}, false, err
	}
	return list, true, nil
}

// Rename changes the title of checklist id.
func (c *Checklists) Rename(ctx context.Context, id core.ID, title string) (bool, error) {
	if blank(title) {
		return false, nil
	}
	title = strings.TrimSpace(title)
	return c.modify(ctx, id, func(l Checklist) (Checklist, bool) {
		if l.Title == title {
			return l, false
		}
		l.Title = title
		return l, true
	})
}

// Remove deletes checklist id together with its items.
func (c *Checklists) Remove(ctx context.Context, id core.ID) (bool, error) {
	return c.binding.UpdateIf(ctx, func(prev ChecklistList) (ChecklistList, bool) {
		if !slices.ContainsFunc(prev, func(l Checklist) bool { return l.ID == id }) {
			return prev, false
		}
		return slices.DeleteFunc(slices.Clone(prev), func(l Checklist) bool { return l.ID == id }), true
	})
}

// AddItem appends an item to checklist listID. Blank text or an unknown list is a no-op.
func (c *Checklists) AddItem(ctx context.Context, listID core.ID, text string) (ChecklistItem, bool, error) {
	if blank(text) {
		return ChecklistItem{}, false, nil
	}
	item := ChecklistItem{ID: c.opts.newID(), Text: strings.TrimSpace(text)}
	changed, err := c.modify(ctx, listID, func(l Checklist) (Checklist, bool) {
		l.Items = append(slices.Clone(l.Items), item)
		return l, true
	})
	if err != nil || !changed {
		return ChecklistItem{}, false, err
	}
	return item, true, nil
}

// UpdateItem merges patch into an item.
func (c *Checklists) UpdateItem(ctx context.Context, listID, itemID core.ID, patch ItemPatch) (bool, error) {
	if patch.Text != nil && blank(*patch.Text) {
		return false, nil
	}
	return c.modifyItem(ctx, listID, itemID, func(it ChecklistItem) ChecklistItem {
		if patch.Text != nil {
			it.Text = strings.TrimSpace(*patch.Text)
		}
		if patch.Completed != nil {
			it.Completed = *patch.Completed
		}
		return it
	})
}

// ToggleItem flips the completion of an item.
func (c *Checklists) ToggleItem(ctx context.Context, listID, itemID core.ID) (bool, error) {
	return c.modifyItem(ctx, listID, itemID, func(it ChecklistItem) ChecklistItem {
		it.Completed = !it.Completed
		return it
	})
}

// RemoveItem deletes an item.
func (c *Checklists) RemoveItem(ctx context.Context, listID, itemID core.ID) (bool, error) {
	return c.modify(ctx, listID, func(l Checklist) (Checklist, bool) {
		if !slices.ContainsFunc(l.Items, func(it ChecklistItem) bool { return it.ID == itemID }) {
			return l, false
		}
		l.Items = slices.DeleteFunc(slices.Clone(l.Items), func(it ChecklistItem) bool { return it.ID == itemID })
		return l, true
	})
}

// modify replaces checklist id with fn's result.
func (c *Checklists) modify(ctx context.Context, id core.ID, fn func(Checklist) (Checklist, bool)) (bool, error) {
	return c.binding.UpdateIf(ctx, func(prev ChecklistList) (ChecklistList, bool) {
		i := slices.IndexFunc(prev, func(l Checklist) bool { return l.ID == id })
		if i < 0 {
			return prev, false
		}
		updated, changed := fn(prev[i])
		if !changed {
			return prev, false
		}
		next := slices.Clone(prev)
		next[i] = updated
		return next, true
	})
}

func (c *Checklists) modifyItem(ctx context.Context, listID, itemID core.ID, fn func(ChecklistItem) ChecklistItem) (bool, error) {
	return c.modify(ctx, listID, func(l Checklist) (Checklist, bool) {
		j := slices.IndexFunc(l.Items, func(it ChecklistItem) bool { return it.ID == itemID })
		if j < 0 {
			return l, false
		}
		updated := fn(l.Items[j])
		if updated == l.Items[j] {
			return l, false
		}
		l.Items = slices.Clone(l.Items)
		l.Items[j] = updated
		return l, true
	})
}
