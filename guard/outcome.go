package guard

// OutcomeKind tags an [Outcome].
type OutcomeKind uint8

// The zero kind is a redirect so an uninitialised Outcome never allows.
const (
	// OutcomeRedirect aborts the navigation in favour of Target.
	OutcomeRedirect OutcomeKind = iota
	// OutcomeAllow lets the navigation proceed unchanged.
	OutcomeAllow
)

// Outcome is the result of one guard evaluation. Target is set only for redirects;
// an empty redirect Target means [DefaultLoginPath].
type Outcome struct {
	Kind   OutcomeKind
	Target string
}

// Allow returns the pass-through outcome.
func Allow() Outcome {
	return Outcome{Kind: OutcomeAllow}
}

// Redirect returns an outcome sending the caller to target.
func Redirect(target string) Outcome {
	return Outcome{Kind: OutcomeRedirect, Target: target}
}

// Allowed reports whether navigation may proceed.
func (o Outcome) Allowed() bool {
	return o.Kind == OutcomeAllow
}

// RedirectTarget returns Target, or [DefaultLoginPath] when it is empty.
func (o Outcome) RedirectTarget() string {
	if o.Target == "" {
		return DefaultLoginPath
	}
	return o.Target
}

func (o Outcome) String() string {
	if o.Allowed() {
		return "allow"
	}
	return "redirect(" + o.RedirectTarget() + ")"
}
