// Package prompt implements the per-field input loop: a field waits for an
// answer, hands it to an acceptor and either returns the accepted value or
// prints a rejection and waits again. There is no retry limit. The rejection
// text comes from an injectable MessageSelector so the escalation stays
// deterministic under test.
package prompt
