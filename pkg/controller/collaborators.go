package controller

import "context"

// SubmitControl enables and disables the form's submit button.
type SubmitControl interface {
	Disable(ctx context.Context)
	Enable(ctx context.Context)
}

// Notifier reports the outcome of an asynchronous submission.
type Notifier interface {
	Success(ctx context.Context, message string)
	Failure(ctx context.Context, err error)
}

type nopControl struct{}

func (nopControl) Disable(context.Context) {}
func (nopControl) Enable(context.Context)  {}

type nopNotifier struct{}

func (nopNotifier) Success(context.Context, string) {}
func (nopNotifier) Failure(context.Context, error)  {}
