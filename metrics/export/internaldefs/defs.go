package internaldefs

import (
	goConsole "github.com/MrEthical07/goConsole"
)

// BucketCount is the number of latency buckets, +Inf included.
const BucketCount = 8

// CounterDef names one console counter.
type CounterDef struct {
	ID   goConsole.MetricID
	Name string
	Help string
}

// HistogramDef names one console histogram.
type HistogramDef struct {
	ID   goConsole.MetricID
	Name string
	Help string
}

// Audit drop counter.
const (
	AuditDroppedName = "goconsole_audit_dropped_total"
	AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."
)

var CounterDefs = []CounterDef{
	{ID: goConsole.MetricGuardAllow, Name: "goconsole_guard_allow_total", Help: "Guarded navigations allowed."},
	{ID: goConsole.MetricGuardRedirect, Name: "goconsole_guard_redirect_total", Help: "Guarded navigations redirected to login."},
	{ID: goConsole.MetricThemeSet, Name: "goconsole_theme_set_total", Help: "Successful theme set operations."},
	{ID: goConsole.MetricThemeToggle, Name: "goconsole_theme_toggle_total", Help: "Successful theme toggles."},
	{ID: goConsole.MetricThemePersistFailure, Name: "goconsole_theme_persist_failure_total", Help: "Theme updates rejected because storage failed."},
	{ID: goConsole.MetricThemeInitStorage, Name: "goconsole_theme_init_storage_total", Help: "Theme initializations resolved from storage."},
	{ID: goConsole.MetricThemeInitSignal, Name: "goconsole_theme_init_signal_total", Help: "Theme initializations resolved from the system signal."},
	{ID: goConsole.MetricThemeInitDefault, Name: "goconsole_theme_init_default_total", Help: "Theme initializations that fell back to the default."},
	{ID: goConsole.MetricLoginSuccess, Name: "goconsole_login_success_total", Help: "Successful operator logins."},
	{ID: goConsole.MetricLoginFailure, Name: "goconsole_login_failure_total", Help: "Rejected operator logins."},
	{ID: goConsole.MetricLoginRateLimited, Name: "goconsole_login_rate_limited_total", Help: "Logins refused by the failure throttle."},
	{ID: goConsole.MetricSessionCreated, Name: "goconsole_session_created_total", Help: "Sessions saved to Redis."},
	{ID: goConsole.MetricLogout, Name: "goconsole_logout_total", Help: "Single-session logouts."},
	{ID: goConsole.MetricLogoutAll, Name: "goconsole_logout_all_total", Help: "Logout-all operations."},
}

var HistogramDefs = []HistogramDef{
	{ID: goConsole.MetricGuardLatency, Name: "goconsole_guard_latency_seconds", Help: "CheckAccess latency."},
}

// HistogramBounds are the upper bounds in seconds, matching the console's
// microsecond buckets.
var HistogramBounds = [BucketCount]string{
	"0.001",
	"0.0025",
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.25",
	"+Inf",
}

// HistogramBoundSuffix is HistogramBounds made safe for instrument names.
var HistogramBoundSuffix = [BucketCount]string{
	"0_001",
	"0_0025",
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_25",
	"inf",
}

// NormalizeBuckets pads or truncates raw to BucketCount entries.
func NormalizeBuckets(raw []uint64) [BucketCount]uint64 {
	var out [BucketCount]uint64
	copy(out[:], raw)
	return out
}

// CumulativeBuckets converts per-bucket counts into running totals.
func CumulativeBuckets(raw [BucketCount]uint64) [BucketCount]uint64 {
	var out [BucketCount]uint64
	var running uint64
	for i, n := range raw {
		running += n
		out[i] = running
	}
	return out
}
