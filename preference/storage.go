package preference

import (
	"context"
	"errors"
	"os"
	"strings"
)

// DefaultKey is the storage key the theme is persisted under.
const DefaultKey = "vite-ui-theme"

// ErrStorageUnavailable wraps failures writing to durable storage.
var ErrStorageUnavailable = errors.New("preference storage unavailable")

// Storage is durable key-value storage that survives process restarts.
//
// Get reports found=false for a missing key; err is reserved for backend failures.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// SystemSignal reports the host's dark-mode preference. known=false means the host
// exposes no signal.
type SystemSignal interface {
	PrefersDark(ctx context.Context) (dark bool, known bool)
}

// SignalFunc adapts a function to [SystemSignal].
type SignalFunc func(ctx context.Context) (bool, bool)

// PrefersDark calls f.
func (f SignalFunc) PrefersDark(ctx context.Context) (bool, bool) {
	if f == nil {
		return false, false
	}
	return f(ctx)
}

// NoSignal is a host without a dark-mode signal.
var NoSignal SystemSignal = SignalFunc(nil)

// FixedSignal returns a signal that always reports dark.
func FixedSignal(dark bool) SystemSignal {
	return SignalFunc(func(context.Context) (bool, bool) { return dark, true })
}

// EnvSignal reads the host preference from environment variable name. "dark", "1",
// "true", and "yes" report dark; "light", "0", "false", and "no" report light;
// anything else, including an unset variable, reports no signal.
func EnvSignal(name string) SystemSignal {
	return SignalFunc(func(context.Context) (bool, bool) {
		raw, ok := os.LookupEnv(name)
		if !ok {
			return false, false
		}
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "dark", "1", "true", "yes":
			return true, true
		case "light", "0", "false", "no":
			return false, true
		default:
			return false, false
		}
	})
}
