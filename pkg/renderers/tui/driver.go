package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Prompt is one question asked for a field or choice group.
type Prompt struct {
	Message string
	Help    string
	Default string
	Options []string
	// Selected holds the indices of options already checked.
	Selected []int
}

// PromptDriver abstracts the terminal so sessions can be tested without one.
// Choose returns the picked option indices; single choices return at most
// one.
type PromptDriver interface {
	Text(ctx context.Context, p Prompt) (string, error)
	Secret(ctx context.Context, p Prompt) (string, error)
	Multiline(ctx context.Context, p Prompt) (string, error)
	Choose(ctx context.Context, p Prompt, multiple bool) ([]int, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out     io.Writer
	askOpts []survey.AskOpt
}

// NewSurveyDriver returns the survey backed driver used by default. Info
// lines go to out, or stdout when nil; askOpts apply to every prompt, e.g.
// survey.WithStdio.
func NewSurveyDriver(out io.Writer, askOpts ...survey.AskOpt) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out, askOpts: askOpts}
}

func (d *surveyDriver) Text(ctx context.Context, p Prompt) (string, error) {
	var out string
	err := d.ask(ctx, &survey.Input{Message: p.Message, Help: p.Help, Default: p.Default}, &out)
	return out, err
}

// Secret never echoes the current value back as a default.
func (d *surveyDriver) Secret(ctx context.Context, p Prompt) (string, error) {
	var out string
	err := d.ask(ctx, &survey.Password{Message: p.Message, Help: p.Help}, &out)
	return out, err
}

func (d *surveyDriver) Multiline(ctx context.Context, p Prompt) (string, error) {
	var out string
	err := d.ask(ctx, &survey.Multiline{Message: p.Message, Help: p.Help, Default: p.Default}, &out)
	return out, err
}

func (d *surveyDriver) Choose(ctx context.Context, p Prompt, multiple bool) ([]int, error) {
	preset := optionsAt(p.Options, p.Selected)
	if multiple {
		prompt := &survey.MultiSelect{Message: p.Message, Help: p.Help, Options: p.Options}
		if len(preset) > 0 {
			prompt.Default = preset
		}
		var picked []string
		if err := d.ask(ctx, prompt, &picked); err != nil {
			return nil, err
		}
		return indicesOf(p.Options, picked), nil
	}

	prompt := &survey.Select{Message: p.Message, Help: p.Help, Options: p.Options}
	if len(preset) > 0 {
		prompt.Default = preset[0]
	}
	var picked string
	if err := d.ask(ctx, prompt, &picked); err != nil {
		return nil, err
	}
	return indicesOf(p.Options, []string{picked}), nil
}

func (d *surveyDriver) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	var out bool
	err := d.ask(ctx, &survey.Confirm{Message: message, Default: def}, &out)
	return out, err
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// ask runs one survey prompt. Ctrl-C surfaces as ErrAborted.
func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, response any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(prompt, response, d.askOpts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// indicesOf maps values back to option positions, in option order.
func indicesOf(options, values []string) []int {
	want := make(map[string]struct{}, len(values))
	for _, v := range values {
		want[v] = struct{}{}
	}
	var out []int
	for i, option := range options {
		if _, ok := want[option]; ok {
			out = append(out, i)
		}
	}
	return out
}

func optionsAt(options []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
