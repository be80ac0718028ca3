package lazycell

import (
	"fmt"
	"regexp"
)

// Pattern is a lazily compiled regular expression. The pattern text is
// held uncompiled until first use; compilation happens exactly once, and
// a malformed pattern poisons the Pattern so every use reports the
// compile failure.
//
// A Pattern is safe for concurrent use. Construct with NewPattern; the
// zero value has no pattern text and is not usable.
type Pattern struct {
	expr string
	cell Cell[*regexp.Regexp]
}

// NewPattern returns a Pattern for expr. expr is not compiled, or even
// validated, until the first use.
func NewPattern(expr string) *Pattern {
	return &Pattern{expr: expr}
}

// String returns the pattern text.
func (p *Pattern) String() string { return p.expr }

// Regexp returns the compiled expression, compiling it if this is the
// first use. All callers receive the same *regexp.Regexp.
func (p *Pattern) Regexp() (*regexp.Regexp, error) {
	re, err := p.cell.Get(func() (*regexp.Regexp, error) {
		return regexp.Compile(p.expr)
	})
	if err != nil {
		return nil, err
	}
	if re == nil {
		// The cell reports initialized, so a nil here is corrupted state,
		// not a failure the caller can act on.
		panic(fmt.Sprintf("lazycell: internal error: pattern %q reported compiled but holds no value", p.expr))
	}
	return re, nil
}

// MatchString reports whether the pattern matches s, compiling the
// pattern on first use. The error is the compile failure, if any.
func (p *Pattern) MatchString(s string) (bool, error) {
	re, err := p.Regexp()
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// MustMatchString is like MatchString but panics if the pattern does not
// compile. Use for patterns known valid at build time.
func (p *Pattern) MustMatchString(s string) bool {
	re, err := p.Regexp()
	if err != nil {
		panic(err)
	}
	return re.MatchString(s)
}
