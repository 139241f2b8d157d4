package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/daycraft"
	"github.com/aretw0/daycraft/pkg/collections"
	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/session"
)

// withSession opens the profile, applies the route guard and runs fn.
func withSession(cmd *cobra.Command, route string, fn func(app *daycraft.App) error) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	d := session.Guard(route, app.Session.Loading(), app.Session.Authenticated())
	if d.Action != session.Render {
		return errNotLoggedIn
	}
	if s, ok := app.Session.Current(); ok {
		cmd.SetContext(session.WithSession(cmd.Context(), s))
	}
	return fn(app)
}

// resolveRef maps a 1-based position or an id prefix to an id.
func resolveRef(ids []core.ID, ref string) (core.ID, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(ids) {
			return "", fmt.Errorf("no entry #%d", n)
		}
		return ids[n-1], nil
	}
	var match core.ID
	for _, id := range ids {
		if id == core.ID(ref) {
			return id, nil
		}
		if strings.HasPrefix(string(id), ref) {
			if match != "" {
				return "", fmt.Errorf("ambiguous id %q", ref)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no entry %q", ref)
	}
	return match, nil
}

func idsOf[E any](items []E, id func(E) core.ID) []core.ID {
	out := make([]core.ID, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func dayFlag(day string) (string, error) {
	if day == "" {
		return collections.Today(nil), nil
	}
	if !collections.IsDay(day) {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", day)
	}
	return day, nil
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportNoop explains a mutation that changed nothing.
func reportNoop(w io.Writer, changed bool, what string) {
	if !changed {
		fmt.Fprintf(w, "Nothing to do: %s.\n", what)
	}
}
