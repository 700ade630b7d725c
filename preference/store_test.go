package preference_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MrEthical07/goConsole/kvstore/memkv"
	"github.com/MrEthical07/goConsole/preference"
)

type countingSignal struct {
	dark, known bool
	calls       int
}

func (s *countingSignal) PrefersDark(context.Context) (bool, bool) {
	s.calls++
	return s.dark, s.known
}

type flakyStorage struct {
	*memkv.Store
	failSet bool
}

func (f *flakyStorage) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.Store.Set(ctx, key, value)
}

func stored(t *testing.T, s *memkv.Store, key string) string {
	t.Helper()
	v, _, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("read storage: %v", err)
	}
	return v
}

func TestInitialResolutionOrder(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		signal preference.SystemSignal
		want   preference.Theme
	}{
		{name: "stored dark beats light signal", stored: "dark", signal: preference.FixedSignal(false), want: preference.ThemeDark},
		{name: "stored light beats dark signal", stored: "light", signal: preference.FixedSignal(true), want: preference.ThemeLight},
		{name: "empty with dark signal", signal: preference.FixedSignal(true), want: preference.ThemeDark},
		{name: "empty with light signal", signal: preference.FixedSignal(false), want: preference.ThemeLight},
		{name: "empty without signal", signal: preference.NoSignal, want: preference.ThemeLight},
		{name: "nil signal", signal: nil, want: preference.ThemeLight},
		{name: "garbage value falls through to signal", stored: "sepia", signal: preference.FixedSignal(true), want: preference.ThemeDark},
		{name: "garbage value falls through to default", stored: "sepia", signal: preference.NoSignal, want: preference.ThemeLight},
		{name: "padded value is ignored", stored: " dark ", signal: preference.NoSignal, want: preference.ThemeLight},
		{name: "upper-case value is ignored", stored: "DARK", signal: preference.NoSignal, want: preference.ThemeLight},
		{name: "non-exact value falls through to signal", stored: " DARK ", signal: preference.FixedSignal(true), want: preference.ThemeDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := memkv.New()
			if tt.stored != "" {
				_ = kv.Set(context.Background(), preference.DefaultKey, tt.stored)
			}
			s := preference.New(kv, tt.signal)
			if got := s.Initial(context.Background()); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestInitialIsIdempotentAndWritesNothing(t *testing.T) {
	kv := memkv.New()
	s := preference.New(kv, preference.FixedSignal(true))
	ctx := context.Background()

	first := s.Initial(ctx)
	second := s.Initial(ctx)
	if first != second {
		t.Fatalf("expected identical results, got %s then %s", first, second)
	}
	if kv.Writes() != 0 {
		t.Fatalf("expected no writes from Initial, got %d", kv.Writes())
	}
}

func TestInitialStorageUnavailableSkipsSignal(t *testing.T) {
	sig := &countingSignal{dark: true, known: true}
	s := preference.New(memkv.Unavailable(), sig)

	if got := s.Initial(context.Background()); got != preference.ThemeLight {
		t.Fatalf("expected light when storage is unavailable, got %s", got)
	}
	if sig.calls != 0 {
		t.Fatalf("expected signal not consulted, got %d calls", sig.calls)
	}
}

func TestInitialNilStorageUsesDefault(t *testing.T) {
	s := preference.New(nil, preference.FixedSignal(true))
	if got := s.Initial(context.Background()); got != preference.ThemeLight {
		t.Fatalf("expected light, got %s", got)
	}
}

func TestWithDefaultAndKey(t *testing.T) {
	kv := memkv.New()
	s := preference.New(kv, preference.NoSignal,
		preference.WithDefault(preference.ThemeDark),
		preference.WithKey("console-theme"),
		preference.WithDefault("sepia"),
		preference.WithKey(""),
	)
	if s.Key() != "console-theme" {
		t.Fatalf("expected custom key, got %q", s.Key())
	}
	if got := s.Initial(context.Background()); got != preference.ThemeDark {
		t.Fatalf("expected dark default, got %s", got)
	}
	if err := s.SetTheme(context.Background(), preference.ThemeLight); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v := stored(t, kv, "console-theme"); v != "light" {
		t.Fatalf("expected value under custom key, got %q", v)
	}
}

func TestToggleTwiceReturnsToStart(t *testing.T) {
	kv := memkv.New()
	s := preference.New(kv, preference.NoSignal)
	ctx := context.Background()
	start := s.Theme(ctx)

	first, err := s.ToggleTheme(ctx)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if first != start.Opposite() || stored(t, kv, preference.DefaultKey) != string(first) {
		t.Fatalf("expected %s stored after first toggle, got %s / %q", start.Opposite(), first, stored(t, kv, preference.DefaultKey))
	}

	second, err := s.ToggleTheme(ctx)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if second != start || stored(t, kv, preference.DefaultKey) != string(start) {
		t.Fatalf("expected %s stored after second toggle, got %s / %q", start, second, stored(t, kv, preference.DefaultKey))
	}
}

func TestSetThemeVisibleToFreshStore(t *testing.T) {
	for _, theme := range []preference.Theme{preference.ThemeLight, preference.ThemeDark} {
		kv := memkv.New()
		ctx := context.Background()
		if err := preference.New(kv, preference.FixedSignal(theme == preference.ThemeLight)).SetTheme(ctx, theme); err != nil {
			t.Fatalf("set %s: %v", theme, err)
		}
		fresh := preference.New(kv, preference.FixedSignal(theme == preference.ThemeLight))
		if got := fresh.Initial(ctx); got != theme {
			t.Fatalf("expected fresh store to see %s, got %s", theme, got)
		}
	}
}

func TestLightDefaultScenario(t *testing.T) {
	kv := memkv.New()
	s := preference.New(kv, preference.NoSignal)
	ctx := context.Background()

	if got := s.Theme(ctx); got != preference.ThemeLight {
		t.Fatalf("expected light initially, got %s", got)
	}
	if got, err := s.ToggleTheme(ctx); err != nil || got != preference.ThemeDark {
		t.Fatalf("expected dark after toggle, got %s err=%v", got, err)
	}
	if v := stored(t, kv, preference.DefaultKey); v != "dark" {
		t.Fatalf("expected dark stored, got %q", v)
	}
	if err := s.SetTheme(ctx, preference.ThemeLight); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := s.Theme(ctx); got != preference.ThemeLight {
		t.Fatalf("expected light after set, got %s", got)
	}
	if v := stored(t, kv, preference.DefaultKey); v != "light" {
		t.Fatalf("expected light stored, got %q", v)
	}
}

func TestSetThemeRejectsInvalid(t *testing.T) {
	kv := memkv.New()
	s := preference.New(kv, preference.NoSignal)
	err := s.SetTheme(context.Background(), "sepia")
	if !errors.Is(err, preference.ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if kv.Writes() != 0 {
		t.Fatalf("expected no write, got %d", kv.Writes())
	}
}

func TestPersistFailureLeavesThemeUnchanged(t *testing.T) {
	kv := &flakyStorage{Store: memkv.New()}
	s := preference.New(kv, preference.NoSignal)
	ctx := context.Background()

	notified := 0
	s.Subscribe(func(preference.Theme) { notified++ })

	kv.failSet = true
	if err := s.SetTheme(ctx, preference.ThemeDark); !errors.Is(err, preference.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	got, err := s.ToggleTheme(ctx)
	if !errors.Is(err, preference.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable on toggle, got %v", err)
	}
	if got != preference.ThemeLight || s.Theme(ctx) != preference.ThemeLight {
		t.Fatalf("expected theme to stay light, got %s / %s", got, s.Theme(ctx))
	}
	if notified != 0 {
		t.Fatalf("expected no notifications, got %d", notified)
	}

	kv.failSet = false
	if err := s.SetTheme(ctx, preference.ThemeDark); err != nil {
		t.Fatalf("set after recovery: %v", err)
	}
	if notified != 1 {
		t.Fatalf("expected one notification, got %d", notified)
	}
}

func TestNilStorageUpdatesMemoryOnly(t *testing.T) {
	s := preference.New(nil, nil)
	ctx := context.Background()
	if got, err := s.ToggleTheme(ctx); err != nil || got != preference.ThemeDark {
		t.Fatalf("expected dark without error, got %s err=%v", got, err)
	}
	if got := s.Theme(ctx); got != preference.ThemeDark {
		t.Fatalf("expected dark in memory, got %s", got)
	}
	if got := s.Initial(ctx); got != preference.ThemeLight {
		t.Fatalf("expected Initial to ignore memory, got %s", got)
	}
}

func TestSubscribersRunInOrderAndCancel(t *testing.T) {
	s := preference.New(memkv.New(), preference.NoSignal)
	ctx := context.Background()

	var got []string
	cancelA := s.Subscribe(func(t preference.Theme) { got = append(got, "a:"+t.String()) })
	s.Subscribe(func(t preference.Theme) { got = append(got, "b:"+t.String()) })
	s.Subscribe(nil)()

	if err := s.SetTheme(ctx, preference.ThemeDark); err != nil {
		t.Fatalf("set: %v", err)
	}
	cancelA()
	cancelA()
	if _, err := s.ToggleTheme(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	want := []string{"a:dark", "b:dark", "b:light"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestInitHookReportsSourceOnce(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		signal preference.SystemSignal
		want   preference.Source
	}{
		{name: "storage", stored: "dark", signal: preference.NoSignal, want: preference.SourceStorage},
		{name: "signal", signal: preference.FixedSignal(true), want: preference.SourceSignal},
		{name: "default", signal: preference.FixedSignal(false), want: preference.SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := memkv.New()
			if tt.stored != "" {
				_ = kv.Set(context.Background(), preference.DefaultKey, tt.stored)
			}
			calls := 0
			var src preference.Source
			s := preference.New(kv, tt.signal, preference.WithInitHook(func(_ preference.Theme, got preference.Source) {
				calls++
				src = got
			}))
			s.Theme(context.Background())
			s.Theme(context.Background())
			if calls != 1 || src != tt.want {
				t.Fatalf("expected one %s init, got %d calls source=%s", tt.want, calls, src)
			}
		})
	}
}

func TestConcurrentToggleKeepsValidTheme(t *testing.T) {
	kv := memkv.New()
	s := preference.New(kv, preference.NoSignal)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.ToggleTheme(ctx)
		}()
	}
	wg.Wait()

	if got := s.Theme(ctx); got != preference.ThemeLight {
		t.Fatalf("expected even toggles to end at light, got %s", got)
	}
	if v := stored(t, kv, preference.DefaultKey); v != "light" {
		t.Fatalf("expected storage to match memory, got %q", v)
	}
}
