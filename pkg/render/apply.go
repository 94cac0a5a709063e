package render

import (
	"context"
	"errors"
	"fmt"
)

// Apply executes a plan against the supplied sinks: message boxes are cleared
// first, then marks are applied in order, then messages shown, then focus
// moved. Every step runs even when an earlier one fails; the failures are
// joined into the returned error.
func Apply(ctx context.Context, plan Plan, sinks Sinks) error {
	var errs []error

	if plan.ClearMessages && sinks.Messages != nil {
		if err := sinks.Messages.Clear(ctx); err != nil {
			errs = append(errs, fmt.Errorf("render: clear messages: %w", err))
		}
	}

	for _, mark := range plan.Marks {
		if err := applyMark(ctx, mark, sinks); err != nil {
			errs = append(errs, err)
		}
	}

	if sinks.Messages != nil {
		for _, msg := range plan.Messages {
			if err := sinks.Messages.Show(ctx, msg); err != nil {
				errs = append(errs, fmt.Errorf("render: show message for %q: %w", msg.FieldID, err))
			}
		}
	}

	if plan.Focus != "" && sinks.Focus != nil {
		if err := sinks.Focus.Focus(ctx, plan.Focus); err != nil {
			errs = append(errs, fmt.Errorf("render: focus %q: %w", plan.Focus, err))
		}
	}

	return errors.Join(errs...)
}

func applyMark(ctx context.Context, mark Mark, sinks Sinks) error {
	switch mark.Op {
	case OpMarkOn, OpMarkOff:
		if sinks.Markers == nil {
			return nil
		}
		if err := sinks.Markers.Mark(ctx, mark.Target, mark.Op == OpMarkOn); err != nil {
			return fmt.Errorf("render: mark %s %q: %w", mark.Op, mark.Target.FieldID, err)
		}
	case OpClearStored:
		if sinks.Stored == nil || mark.Target.Name == "" {
			return nil
		}
		if err := sinks.Stored.ClearField(ctx, mark.Target.Name); err != nil {
			return fmt.Errorf("render: clear stored %q: %w", mark.Target.Name, err)
		}
	default:
		return fmt.Errorf("%w %d", ErrUnknownOperation, int(mark.Op))
	}
	return nil
}
