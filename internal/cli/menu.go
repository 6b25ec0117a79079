package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const menuExit = "exit"

func (a *app) newMenuCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Runs the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.menu(cmd.OutOrStdout())
		},
	}
	a.opts.bindVars(cmd.Flags())
	return cmd
}

func (a *app) style(styler func(interface{}) string, s string) string {
	if a.opts.NoColor {
		return s
	}
	return styler(s)
}

func (a *app) selectTemplates() *promptui.SelectTemplates {
	if !a.opts.NoColor {
		return nil
	}
	return &promptui.SelectTemplates{
		Label:    "{{ . }}:",
		Active:   "> {{ . }}",
		Inactive: "  {{ . }}",
		Selected: "{{ . }}",
	}
}

// menu loops form, expression, method until the user picks exit or
// interrupts.
func (a *app) menu(out io.Writer) error {
	for {
		form, err := a.choose("Normal form", []string{"dnf", "cnf", menuExit})
		if done, err := menuDone(err); done {
			return err
		}
		if form == menuExit {
			return nil
		}

		prompt := promptui.Prompt{
			Label: "Expression",
			Validate: func(s string) error {
				_, err := a.cache.Get(a.opts.Vars, s)
				return err
			},
		}
		if a.opts.NoColor {
			prompt.Templates = &promptui.PromptTemplates{
				Prompt:  "{{ . }}: ",
				Valid:   "{{ . }}: ",
				Invalid: "{{ . }}: ",
				Success: "{{ . }}: ",
			}
		}
		src, err := prompt.Run()
		if done, err := menuDone(err); done {
			return err
		}

		method, err := a.choose("Method", []string{"calculus", "table", "grid"})
		if done, err := menuDone(err); done {
			return err
		}

		f, err := a.cache.Get(a.opts.Vars, src)
		if err != nil {
			fmt.Fprintln(out, a.style(promptui.Styler(promptui.FGRed), err.Error()))
			continue
		}
		a.opts.Form, a.opts.Method = form, method
		if err := a.minimize(out, f); err != nil {
			fmt.Fprintln(out, a.style(promptui.Styler(promptui.FGRed), err.Error()))
		}
		fmt.Fprintln(out, a.style(promptui.Styler(promptui.FGMagenta), strings.Repeat("-", 30)))
	}
}

func (a *app) choose(label string, items []string) (string, error) {
	sel := promptui.Select{
		Label:     label,
		Items:     items,
		Templates: a.selectTemplates(),
	}
	_, choice, err := sel.Run()
	return choice, err
}

// menuDone reports whether a prompt error ends the menu, and the error
// to return when it does. Interrupt and end of input end it cleanly.
func menuDone(err error) (bool, error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF), errors.Is(err, io.EOF):
		return true, nil
	}
	return true, err
}
