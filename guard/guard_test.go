package guard

import (
	"context"
	"testing"

	"github.com/MrEthical07/goConsole/session"
)

func TestCheckAccessTokenPresence(t *testing.T) {
	tests := []struct {
		name      string
		sess      *session.Session
		wantAllow bool
	}{
		{name: "no session", sess: nil, wantAllow: false},
		{name: "empty token", sess: &session.Session{UserID: "u"}, wantAllow: false},
		{name: "opaque token", sess: &session.Session{AccessToken: "abc"}, wantAllow: true},
		{name: "single space token", sess: &session.Session{AccessToken: " "}, wantAllow: true},
		{name: "malformed jwt still allowed", sess: &session.Session{AccessToken: "not.a.jwt"}, wantAllow: true},
		{name: "expired session with token", sess: &session.Session{AccessToken: "x", ExpiresAt: 1}, wantAllow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(session.Static(tt.sess))
			out := g.CheckAccess(context.Background())
			if out.Allowed() != tt.wantAllow {
				t.Fatalf("expected allowed=%v, got %s", tt.wantAllow, out)
			}
			if !tt.wantAllow && out.Target != "/admin/login" {
				t.Fatalf("expected redirect to /admin/login, got %q", out.Target)
			}
			if tt.wantAllow && out.Target != "" {
				t.Fatalf("allow outcome must not carry a target, got %q", out.Target)
			}
		})
	}
}

func TestCheckAccessReevaluatesEveryCall(t *testing.T) {
	var current *session.Session
	g := New(session.AccessorFunc(func(context.Context) *session.Session { return current }))
	ctx := context.Background()

	if g.CheckAccess(ctx).Allowed() {
		t.Fatal("expected redirect before login")
	}
	current = &session.Session{AccessToken: "tok"}
	if !g.CheckAccess(ctx).Allowed() {
		t.Fatal("expected allow after login")
	}
	current = nil
	if g.CheckAccess(ctx).Allowed() {
		t.Fatal("expected redirect after logout")
	}
}

func TestNilGuardAndAccessorRedirect(t *testing.T) {
	var g *Guard
	if out := g.CheckAccess(context.Background()); out != Redirect(DefaultLoginPath) {
		t.Fatalf("nil guard: expected redirect, got %s", out)
	}
	if out := New(nil).CheckAccess(context.Background()); out != Redirect(DefaultLoginPath) {
		t.Fatalf("nil accessor: expected redirect, got %s", out)
	}
}

func TestZeroOutcomeRedirects(t *testing.T) {
	var out Outcome
	if out.Allowed() {
		t.Fatal("zero Outcome must not allow")
	}
	if out.RedirectTarget() != DefaultLoginPath {
		t.Fatalf("expected default login path, got %q", out.RedirectTarget())
	}
	if out.String() != "redirect(/admin/login)" {
		t.Fatalf("unexpected String(): %s", out.String())
	}
	if got := Redirect("/ops/login").RedirectTarget(); got != "/ops/login" {
		t.Fatalf("expected explicit target, got %q", got)
	}
}

func TestWithLoginPathAndObserver(t *testing.T) {
	var seen []Outcome
	g := New(session.Static(nil),
		WithLoginPath("/ops/login"),
		WithLoginPath(""),
		WithObserver(func(_ context.Context, o Outcome) { seen = append(seen, o) }),
	)

	out := g.CheckAccess(context.Background())
	if out.Target != "/ops/login" {
		t.Fatalf("expected custom login path, got %q", out.Target)
	}
	if len(seen) != 1 || seen[0] != out {
		t.Fatalf("expected observer to see %s, got %v", out, seen)
	}
	if out.String() != "redirect(/ops/login)" {
		t.Fatalf("unexpected String(): %s", out.String())
	}
	if Allow().String() != "allow" {
		t.Fatalf("unexpected allow String(): %s", Allow().String())
	}
}
