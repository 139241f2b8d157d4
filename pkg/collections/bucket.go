package collections

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/store"
)

// Category classifies a bucket-list goal.
type Category string

const (
	CategoryPersonal Category = "Personal"
	CategoryCareer   Category = "Career"
	CategoryTravel   Category = "Travel"
	CategoryLearning Category = "Learning"
)

// Categories lists the categories in display order.
var Categories = []Category{CategoryPersonal, CategoryCareer, CategoryTravel, CategoryLearning}

// ErrUnknownCategory is returned by ParseCategory.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory matches s against the known categories, case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Goal is a bucket-list entry.
type Goal struct {
	ID        core.ID   `json:"id" validate:"required"`
	Text      string    `json:"text" validate:"required"`
	Category  Category  `json:"category" validate:"oneof=Personal Career Travel Learning"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// GoalPatch holds the fields to change on a goal.
type GoalPatch struct {
	Text      *string
	Category  *Category
	Completed *bool
}

// GoalList is the stored, newest-first sequence of goals.
type GoalList []Goal

// Normalize drops goals without id, text or a known category.
func (l GoalList) Normalize() GoalList {
	out := make(GoalList, 0, len(l))
	for _, g := range l {
		if valid(g) {
			out = append(out, g)
		}
	}
	return out
}

// CategoryGroup is a display-time grouping of goals.
type CategoryGroup struct {
	Category Category `json:"category"`
	Goals    []Goal   `json:"goals"`
	Progress Progress `json:"progress"`
}

// BucketList is the global goal collection.
type BucketList struct {
	binding *store.Binding[GoalList]
	opts    *options
}

// OpenBucketList binds the goal collection.
func OpenBucketList(ctx context.Context, s *store.Store, opts ...Option) (*BucketList, error) {
	b, err := store.Bind(ctx, s, KeyBucketList, GoalList{})
	if err != nil {
		return nil, err
	}
	return &BucketList{binding: b, opts: buildOptions(opts)}, nil
}

// Binding exposes the underlying binding.
func (c *BucketList) Binding() *store.Binding[GoalList] {
	return c.binding
}

// All returns the goals, newest first.
func (c *BucketList) All() []Goal {
	return slices.Clone(c.binding.Get())
}

// Progress reports completion over all goals.
func (c *BucketList) Progress() Progress {
	return progressOf(c.binding.Get(), func(g Goal) bool { return g.Completed })
}

// Groups returns the non-empty categories with their goals, in category order.
func (c *BucketList) Groups() []CategoryGroup {
	return GroupByCategory(c.binding.Get())
}

// Add prepends a goal. Blank text or an unknown category is a no-op.
func (c *BucketList) Add(ctx context.Context, text string, category Category) (Goal, bool, error) {
	goal := Goal{
		ID:        c.opts.newID(),
		Text:      strings.TrimSpace(text),
		Category:  category,
		CreatedAt: c.opts.now(),
	}
	if !valid(goal) {
		return Goal{}, false, nil
	}
	err := c.binding.Update(ctx, func(prev GoalList) GoalList {
		return append(GoalList{goal}, prev...)
	})
	if err != nil {
		return Goal{}, false, err
	}
	return goal, true, nil
}

// Update merges patch into goal id. A patch producing an invalid goal is a no-op.
func (c *BucketList) Update(ctx context.Context, id core.ID, patch GoalPatch) (bool, error) {
	return c.modify(ctx, id, func(g Goal) Goal {
		if patch.Text != nil {
			g.Text = strings.TrimSpace(*patch.Text)
		}
		if patch.Category != nil {
			g.Category = *patch.Category
		}
		if patch.Completed != nil {
			g.Completed = *patch.Completed
		}
		return g
	})
}

// Toggle flips the completion of goal id.
func (c *BucketList) Toggle(ctx context.Context, id core.ID) (bool, error) {
	return c.modify(ctx, id, func(g Goal) Goal {
		g.Completed = !g.Completed
		return g
	})
}

// Remove deletes goal id.
func (c *BucketList) Remove(ctx context.Context, id core.ID) (bool, error) {
	return c.binding.UpdateIf(ctx, func(prev GoalList) (GoalList, bool) {
		if !slices.ContainsFunc(prev, func(g Goal) bool { return g.ID == id }) {
			return prev, false
		}
		return slices.DeleteFunc(slices.Clone(prev), func(g Goal) bool { return g.ID == id }), true
	})
}

func (c *BucketList) modify(ctx context.Context, id core.ID, fn func(Goal) Goal) (bool, error) {
	return c.binding.UpdateIf(ctx, func(prev GoalList) (GoalList, bool) {
		i := slices.IndexFunc(prev, func(g Goal) bool { return g.ID == id })
		if i < 0 {
			return prev, false
		}
		updated := fn(prev[i])
		if updated == prev[i] || !valid(updated) {
			return prev, false
		}
		next := slices.Clone(prev)
		next[i] = updated
		return next, true
	})
}

// GroupByCategory groups goals by category, skipping empty categories.
func GroupByCategory(goals []Goal) []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(Categories))
	for _, cat := range Categories {
		var in []Goal
		for _, g := range goals {
			if g.Category == cat {
				in = append(in, g)
			}
		}
		if len(in) == 0 {
			continue
		}
		groups = append(groups, CategoryGroup{
			Category: cat,
			Goals:    in,
			Progress: progressOf(in, func(g Goal) bool { return g.Completed }),
		})
	}
	return groups
}
