package preference

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Source records where an initial theme came from.
type Source uint8

const (
	// SourceDefault means neither storage nor the system signal decided.
	SourceDefault Source = iota
	// SourceStorage means a valid persisted value was found.
	SourceStorage
	// SourceSignal means the system dark-mode signal decided.
	SourceSignal
)

func (s Source) String() string {
	switch s {
	case SourceStorage:
		return "storage"
	case SourceSignal:
		return "signal"
	default:
		return "default"
	}
}

// Store holds the current theme and persists every update.
//
// Updates are serialised by a mutex. Subscribers run synchronously on the updating
// goroutine, outside the lock.
type Store struct {
	storage  Storage
	signal   SystemSignal
	key      string
	fallback Theme
	onInit   func(Theme, Source)

	mu      sync.Mutex
	loaded  bool
	current Theme

	subMu  sync.Mutex
	subs   map[uint64]func(Theme)
	nextID uint64
}

// Option configures a [Store].
type Option func(*Store)

// WithKey overrides [DefaultKey]. Empty keys are ignored.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithDefault overrides the hardcoded light default. Invalid themes are ignored.
func WithDefault(t Theme) Option {
	return func(s *Store) {
		if t.Valid() {
			s.fallback = t
		}
	}
}

// WithInitHook registers fn to be told which source seeded the store. It fires once,
// on first access.
func WithInitHook(fn func(Theme, Source)) Option {
	return func(s *Store) {
		s.onInit = fn
	}
}

// New returns a store over storage and signal. A nil storage keeps the preference in
// memory only; a nil signal behaves like [NoSignal].
func New(storage Storage, signal SystemSignal, opts ...Option) *Store {
	if signal == nil {
		signal = NoSignal
	}
	s := &Store{
		storage:  storage,
		signal:   signal,
		key:      DefaultKey,
		fallback: ThemeLight,
		subs:     make(map[uint64]func(Theme)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Initial resolves the starting theme without writing anything. Calling it twice
// against unchanged storage yields the same theme.
func (s *Store) Initial(ctx context.Context) Theme {
	t, _ := s.resolve(ctx)
	return t
}

func (s *Store) resolve(ctx context.Context) (Theme, Source) {
	if s.storage == nil {
		return s.fallback, SourceDefault
	}

	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return s.fallback, SourceDefault
	}
	// Stored values must match exactly; anything else is ignored.
	if t := Theme(raw); found && t.Valid() {
		return t, SourceStorage
	}

	if dark, known := s.signal.PrefersDark(ctx); known && dark {
		return ThemeDark, SourceSignal
	}

	return s.fallback, SourceDefault
}

// Theme returns the current theme, seeding it from [Store.Initial] on first access.
func (s *Store) Theme(ctx context.Context) Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	return s.current
}

func (s *Store) ensureLoadedLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	t, src := s.resolve(ctx)
	s.current = t
	s.loaded = true
	if s.onInit != nil {
		s.onInit(t, src)
	}
}

// SetTheme persists t, then makes it the current theme and notifies subscribers.
//
// When the write fails the current theme is unchanged and the error wraps
// [ErrStorageUnavailable]. Without storage the update is memory-only.
func (s *Store) SetTheme(ctx context.Context, t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, string(t))
	}

	s.mu.Lock()
	s.ensureLoadedLocked(ctx)
	if err := s.persistLocked(ctx, t); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = t
	s.mu.Unlock()

	s.notify(t)
	return nil
}

// ToggleTheme flips the current theme with the same persist-then-update sequence as
// [Store.SetTheme] and returns the new theme. On failure it returns the unchanged
// current theme.
func (s *Store) ToggleTheme(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	s.ensureLoadedLocked(ctx)
	next := s.current.Opposite()
	if err := s.persistLocked(ctx, next); err != nil {
		current := s.current
		s.mu.Unlock()
		return current, err
	}
	s.current = next
	s.mu.Unlock()

	s.notify(next)
	return next, nil
}

func (s *Store) persistLocked(ctx context.Context, t Theme) error {
	if s.storage == nil {
		return nil
	}
	if err := s.storage.Set(ctx, s.key, string(t)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Subscribe registers fn for change notifications and returns a function that
// removes it. fn must not call back into SetTheme or ToggleTheme.
func (s *Store) Subscribe(fn func(Theme)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(t Theme) {
	s.subMu.Lock()
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Theme), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(t)
	}
}
