// Package middleware adapts a goConsole.Console to net/http.
//
// # Session binding
//
//   - [SessionCookie] keeps the session ID in a signed cookie (gorilla/sessions).
//   - [BindSession] copies that ID into the request context via session.WithID.
//   - [BindBearer] does the same for API clients presenting the access token issued
//     at login as an Authorization bearer credential.
//
// # Guarding
//
// [RequireSession] asks the console's guard and translates the outcome: a redirect
// becomes a 302 to the login path, allow calls the next handler. The guard decides;
// this package never inspects the token itself.
//
// # Handlers
//
//   - [ThemeHandler] serves the theme preference as JSON.
//   - [LoginHandler] and [LogoutHandler] create and destroy sessions and the cookie.
package middleware
