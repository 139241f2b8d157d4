package collections

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/store"
)

// Task is a to-do item owned by one date bucket.
type Task struct {
	ID        core.ID   `json:"id" validate:"required"`
	Text      string    `json:"text" validate:"required"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskPatch holds the fields to change on a task. Nil fields are kept.
type TaskPatch struct {
	Text      *string
	Completed *bool
}

// TaskBook maps a date key to the ordered tasks of that day.
type TaskBook map[string][]Task

// Normalize drops malformed date keys, invalid tasks and empty days.
func (b TaskBook) Normalize() TaskBook {
	out := make(TaskBook, len(b))
	for day, tasks := range b {
		if !IsDay(day) {
			continue
		}
		kept := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if valid(t) {
				kept = append(kept, t)
			}
		}
		if len(kept) > 0 {
			out[day] = kept
		}
	}
	return out
}

// Tasks is the date-keyed task collection.
type Tasks struct {
	binding *store.Binding[TaskBook]
	opts    *options
}

// OpenTasks binds the task collection.
func OpenTasks(ctx context.Context, s *store.Store, opts ...Option) (*Tasks, error) {
	b, err := store.Bind(ctx, s, KeyTasks, TaskBook{})
	if err != nil {
		return nil, err
	}
	return &Tasks{binding: b, opts: buildOptions(opts)}, nil
}

// Binding exposes the underlying binding (e.g. to subscribe).
func (c *Tasks) Binding() *store.Binding[TaskBook] {
	return c.binding
}

// For returns the tasks of day in insertion order.
func (c *Tasks) For(day string) []Task {
	return slices.Clone(c.binding.Get()[day])
}

// Dates returns the days holding at least one task, oldest first.
func (c *Tasks) Dates() []string {
	days := slices.Collect(maps.Keys(c.binding.Get()))
	sort.Strings(days)
	return days
}

// Progress reports completion for day.
func (c *Tasks) Progress(day string) Progress {
	return progressOf(c.binding.Get()[day], func(t Task) bool { return t.Completed })
}

// Add appends a task to day. Blank text or a malformed day is a no-op.
func (c *Tasks) Add(ctx context.Context, day, text string) (Task, bool, error) {
	if !IsDay(day) || blank(text) {
		return Task{}, false, nil
	}
	task := Task{
		ID:        c.opts.newID(),
		Text:      strings.TrimSpace(text),
		CreatedAt: c.opts.now(),
	}
	err := c.binding.Update(ctx, func(prev TaskBook) TaskBook {
		next := maps.Clone(prev)
		if next == nil {
			next = TaskBook{}
		}
		next[day] = append(slices.Clone(prev[day]), task)
		return next
	})
	if err != nil {
		return Task{}, false, err
	}
	return task, true, nil
}

// Update merges patch into the task id of day. Unknown ids and blank text are no-ops.
func (c *Tasks) Update(ctx context.Context, day string, id core.ID, patch TaskPatch) (bool, error) {
	if patch.Text != nil && blank(*patch.Text) {
		return false, nil
	}
	return c.binding.UpdateIf(ctx, func(prev TaskBook) (TaskBook, bool) {
		tasks := prev[day]
		i := slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
		if i < 0 {
			return prev, false
		}
		updated := tasks[i]
		if patch.Text != nil {
			updated.Text = strings.TrimSpace(*patch.Text)
		}
		if patch.Completed != nil {
			updated.Completed = *patch.Completed
		}
		if updated == tasks[i] {
			return prev, false
		}
		next := maps.Clone(prev)
		next[day] = slices.Clone(tasks)
		next[day][i] = updated
		return next, true
	})
}

// Edit replaces the text of a task.
func (c *Tasks) Edit(ctx context.Context, day string, id core.ID, text string) (bool, error) {
	return c.Update(ctx, day, id, TaskPatch{Text: &text})
}

// Toggle flips the completion of a task.
func (c *Tasks) Toggle(ctx context.Context, day string, id core.ID) (bool, error) {
	return c.binding.UpdateIf(ctx, func(prev TaskBook) (TaskBook, bool) {
		tasks := prev[day]
		i := slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
		if i < 0 {
			return prev, false
		}
		next := maps.Clone(prev)
		next[day] = slices.Clone(tasks)
		next[day][i].Completed = !tasks[i].Completed
		return next, true
	})
}

// Remove deletes a task. A day left without tasks is dropped from the book.
func (c *Tasks) Remove(ctx context.Context, day string, id core.ID) (bool, error) {
	return c.binding.UpdateIf(ctx, func(prev TaskBook) (TaskBook, bool) {
		tasks := prev[day]
		if !slices.ContainsFunc(tasks, func(t Task) bool { return t.ID == id }) {
			return prev, false
		}
		kept := slices.DeleteFunc(slices.Clone(tasks), func(t Task) bool { return t.ID == id })
		next := maps.Clone(prev)
		if len(kept) == 0 {
			delete(next, day)
		} else {
			next[day] = kept
		}
		return next, true
	})
}
