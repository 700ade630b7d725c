// Package rate throttles failed operator logins with Redis fixed-window counters.
//
// A window starts at the first failure (INCR, then EXPIRE when the count is 1) and
// lasts Cooldown. Keys:
//   - <prefix>:rl:u:<username>  failures per username
//   - <prefix>:rl:ip:<ip>       failures per client IP, when enabled
package rate
