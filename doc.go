// Package lazycell provides thread-safe, initialize-exactly-once value cells.
//
// A [Cell] defers an expensive construction (compiling a regex, loading a
// keyset, building a client) until first use, runs the initializer at most
// once across any number of goroutines, and hands every caller the same
// fully-constructed value:
//
//	var emailRe = lazycell.New(func() (*regexp.Regexp, error) {
//		return regexp.Compile(emailPattern)
//	})
//
//	re, err := emailRe.Get(nil)
//
// The first Get wins the right to run the initializer; concurrent callers
// block until it finishes and then share the result. A failed initializer
// poisons the cell: the winner receives the original error, and every
// waiting or later caller receives a [PoisonedError] wrapping it. A
// poisoned cell never retries, so the initializer runs at most once per
// cell for the process lifetime.
//
// Cells are explicit values rather than hidden package globals. Construct
// one where the singleton is owned and share the handle; tests construct
// fresh cells instead of depending on shared process state. For a set of
// named slots carried on a context, see [Registry].
//
// [Pattern] covers the most common use, a lazily compiled regular
// expression:
//
//	var email = lazycell.NewPattern(emailPattern)
//
//	ok, err := email.MatchString("name@example.com")
package lazycell
