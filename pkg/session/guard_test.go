package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/daycraft/pkg/session"
)

func TestGuard(t *testing.T) {
	redirect := func(to string) session.Decision {
		return session.Decision{Action: session.Redirect, Target: to}
	}
	render := session.Decision{Action: session.Render}
	wait := session.Decision{Action: session.Wait}

	tests := []struct {
		path          string
		loading, auth bool
		want          session.Decision
	}{
		{"/", false, false, render},
		{"/", false, true, render},
		{"/login", false, false, render},
		{"/login", false, true, redirect("/dashboard")},
		{"/signup", false, true, redirect("/dashboard")},
		{"/signup", true, false, wait},
		{"/dashboard", false, false, redirect("/")},
		{"/dashboard", true, false, wait},
		{"/dashboard", false, true, render},
		{"/dashboard/notes", false, true, render},
		{"/dashboard/bucket-list/", false, true, render},
		{"/dashboard/tasks", false, false, redirect("/")},
		{"/dashboard/settings", false, true, redirect("/")},
		{"/nowhere", false, true, redirect("/")},
		{"", false, false, render},
	}
	for _, tt := range tests {
		got := session.Guard(tt.path, tt.loading, tt.auth)
		assert.Equal(t, tt.want, got, "path=%q loading=%v auth=%v", tt.path, tt.loading, tt.auth)
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "redirect", session.Redirect.String())
	assert.Equal(t, "wait", session.Wait.String())
}
