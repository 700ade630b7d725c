// Package jwt issues and verifies the access tokens carried by console sessions.
//
// The console guard never inspects token contents; tokens are parsed only by callers
// that need the claims, such as audit enrichment or API handlers.
package jwt
