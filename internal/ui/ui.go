// Package ui holds the terminal output and prompt helpers shared by the
// commands: color formatting, status messages, a query spinner, and thin
// wrappers over survey prompts.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// UI represents the main output surface
type UI struct {
	Verbose bool
	Quiet   bool
	spinner *Spinner
}

// NewUI creates a new UI instance
func NewUI(verbose, quiet bool) *UI {
	return &UI{
		Verbose: verbose,
		Quiet:   quiet,
	}
}

// Printf prints formatted output if not in quiet mode
func (u *UI) Printf(format string, args ...interface{}) {
	if !u.Quiet {
		fmt.Printf(format, args...)
	}
}

// Println prints a line if not in quiet mode
func (u *UI) Println(args ...interface{}) {
	if !u.Quiet {
		fmt.Println(args...)
	}
}

// VerbosePrintf prints formatted output only in verbose mode
func (u *UI) VerbosePrintf(format string, args ...interface{}) {
	if u.Verbose && !u.Quiet {
		fmt.Printf(format, args...)
	}
}

// StartProgress starts a spinner with a message
func (u *UI) StartProgress(message string) {
	if !u.Quiet && IsTerminal() {
		u.spinner = NewSpinner(message)
		u.spinner.Start()
	}
}

// StopProgress stops the spinner
func (u *UI) StopProgress(success bool, message string) {
	if u.spinner != nil {
		u.spinner.Stop(success, message)
		u.spinner = nil
	}
}

// Warning prints a warning message
func (u *UI) Warning(message string) {
	if !u.Quiet {
		ShowWarning(message)
	}
}

// Error prints an error message
func (u *UI) Error(err error) {
	if !u.Quiet {
		ShowError(err)
	}
}

// Info prints an information message
func (u *UI) Info(message string) {
	if !u.Quiet {
		ShowInfo(message)
	}
}

// Success prints a success message
func (u *UI) Success(message string) {
	if !u.Quiet {
		ShowSuccess(message)
	}
}

// Select displays a selection prompt
func Select(message string, options []string) (string, error) {
	var result string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 10,
	}

	err := survey.AskOne(prompt, &result)
	return result, err
}

// SearchableSelect displays a selection prompt with case-insensitive search
func SearchableSelect(message string, options []string) (string, error) {
	var result string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 10,
		Filter: func(filter string, value string, index int) bool {
			return strings.Contains(
				strings.ToLower(value),
				strings.ToLower(filter),
			)
		},
	}

	err := survey.AskOne(prompt, &result)
	return result, err
}

// Input displays a text input prompt
func Input(message, defaultValue, help string) (string, error) {
	var result string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
		Help:    help,
	}

	err := survey.AskOne(prompt, &result)
	return result, err
}

// Password displays a password input prompt
func Password(message, help string) (string, error) {
	var result string
	prompt := &survey.Password{
		Message: message,
		Help:    help,
	}

	err := survey.AskOne(prompt, &result)
	return result, err
}

// Confirm displays a yes/no prompt
func Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}

	err := survey.AskOne(prompt, &result)
	return result, err
}

// PageNumber prompts for a 1-based page number within [1, total].
func PageNumber(current, total int) (int, error) {
	var raw string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Page number (1-%d):", total),
		Default: strconv.Itoa(current),
		Help:    "Enter a page to jump to, or press enter to stay",
	}

	if err := survey.AskOne(prompt, &raw, survey.WithValidator(func(val interface{}) error {
		s, ok := val.(string)
		if !ok {
			return fmt.Errorf("page must be a number")
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("page must be a number")
		}
		if n < 1 || n > total {
			return fmt.Errorf("page must be between 1 and %d", total)
		}
		return nil
	})); err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	return n, nil
}
