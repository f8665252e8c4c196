package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// Banner prints a highlighted heading tagged with a currency name.
func Banner(currencyName, format string, a ...any) {
	tag := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)
	title := pterm.NewStyle(pterm.FgCyan, pterm.Bold)

	pterm.Println(tag.Sprintf(" %s ", strings.ToUpper(currencyName)) + " " + title.Sprintf(format, a...))
}

func Subtitle(format string, a ...any) {
	pterm.NewStyle(pterm.FgCyan, pterm.Bold).Printfln("# %s", fmt.Sprintf(format, a...))
}

func Separator() {
	pterm.Println(pterm.Gray("────────────────────────────────────────"))
}
