// Package inspect evaluates every tracked part against today's date and the
// current mileage and produces the advisories shown at the end of an
// inspection. Evaluate never decides how an empty result is presented;
// Report owns the all-clear message.
package inspect
