package errhandler

import (
	"errors"
	"os"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/walletsync/internal/breaker"
	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/service"
	"github.com/hance08/walletsync/internal/store"
	"github.com/pterm/pterm"
)

func HandleError(err error) {
	if err == nil {
		return
	}
	if IsInterrupt(err) {
		pterm.Warning.Println("Operation Cancelled")
		os.Exit(0)
	}

	logx.Error("CLI", err)
	pterm.Error.Println(Describe(err))
	os.Exit(1)
}

func IsInterrupt(err error) bool {
	return errors.Is(err, terminal.InterruptErr) ||
		errors.Is(err, huh.ErrUserAborted) ||
		strings.Contains(err.Error(), "interrupt")
}

// Describe capitalizes err and appends a hint for the errors users hit most.
func Describe(err error) string {
	msg := capitalize(err.Error())

	switch {
	case errors.Is(err, service.ErrUnknownCurrency):
		return msg + "\nRun 'walletsync status' to list the configured currencies."
	case errors.Is(err, service.ErrUnsupported):
		return msg + "\nThis currency has no node integration yet."
	case errors.Is(err, service.ErrAccountNotTracked):
		return msg + "\nCreate it first with 'walletsync account create'."
	case errors.Is(err, store.ErrAccountExists):
		return msg + "\nEach address is tracked for a single owner GUID."
	case errors.Is(err, breaker.ErrOpen):
		return msg + "\nThe notify endpoint keeps failing; delivery resumes after the breaker cools down."
	}
	return msg
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
