// Package validate checks raw text entered by the user before it is
// converted. The Is* predicates never normalise their input; the typed
// acceptors combine a predicate with conversion and range checks and
// return errors wrapping errs.ErrValidation.
package validate
