// Package controller routes the events of one form instance (init, change,
// blur, submit and reset) to the validation engine, the email suggester, the
// persistence mirror and the submission transport. Handlers are serialised so
// each runs to completion before the next starts.
package controller
