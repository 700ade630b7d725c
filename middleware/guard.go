package middleware

import (
	"context"
	"net/http"

	"github.com/MrEthical07/goConsole/guard"
)

// AccessChecker is satisfied by *goConsole.Console and *guard.Guard.
type AccessChecker interface {
	CheckAccess(ctx context.Context) guard.Outcome
}

// RequireSession gates next on the guard outcome for the request context. Bind the
// session first with [BindSession] or [BindBearer].
func RequireSession(checker AccessChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var out guard.Outcome
			if checker == nil {
				out = guard.Redirect(guard.DefaultLoginPath)
			} else {
				out = checker.CheckAccess(r.Context())
			}

			switch out.Kind {
			case guard.OutcomeAllow:
				next.ServeHTTP(w, r)
			default:
				http.Redirect(w, r, out.RedirectTarget(), http.StatusFound)
			}
		})
	}
}
