package logging

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fryc/common"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

func (ce *ConfigError) display() {
	PrintErrorMessage(ce.Kind+" Error", errors.New(ce.Message))
}

func (bw *BuildWarning) display() {
	PrintWarningMessage(bw.Kind+" Warning", bw.Message)
}

func (cm *CompileMessage) display() {
	fmt.Print("\n\n-- ")
	kindStr := cm.Err.Kind.String() + " Error"
	ErrorStyleBG.Print(kindStr)
	fmt.Print(" ")

	fileName := filepath.Base(cm.Err.Path)
	if cm.Err.Path == "" {
		fileName = "<input>"
	}

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - len(kindStr) - 1
	if dashCount < 3 {
		dashCount = 3
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
	fmt.Println(cm.Err.Message)
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays all the compiler information before starting
// compilation
func displayCompileHeader(target string) {
	fmt.Print("fryc ")
	InfoColorFG.Print("v" + common.FryVersion)
	fmt.Print(" -- target: ")
	InfoColorFG.Println(target)
}

// phase is a compilation phase in progress.
type phase struct {
	name    string
	spinner *pterm.SpinnerPrinter
	start   time.Time
}

// currentPhase is nil when no phase is running.
var currentPhase *phase

// phaseWidth is the width the phase names are padded to so that timings line
// up.  It fits the longest phase the driver displays.
const phaseWidth = len("Compiling") + 2

func (p *phase) label() string {
	return p.name + strings.Repeat(" ", phaseWidth-len(p.name))
}

func prefixPrinter(text string, style *pterm.Style) *pterm.PrefixPrinter {
	return &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: style, Text: text},
	}
}

// displayBeginPhase starts the spinner of a compilation phase
func displayBeginPhase(name string) {
	p := &phase{name: name}
	p.spinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))
	p.spinner.SuccessPrinter = prefixPrinter("Done", SuccessStyleBG)
	p.spinner.FailPrinter = prefixPrinter("Fail", ErrorStyleBG)

	p.spinner.Start(name + "...")
	p.start = time.Now()
	currentPhase = p
}

// displayEndPhase stops the running phase spinner if there is one
func displayEndPhase(success bool) {
	p := currentPhase
	if p == nil {
		return
	}

	if success {
		p.spinner.Success(p.label(), fmt.Sprintf("(%.3fs)", time.Since(p.start).Seconds()))
	} else {
		p.spinner.Fail(p.label())
	}

	currentPhase = nil
}

// printCount prints a count followed by its noun.  Nonzero counts are
// printed in color.
func printCount(n int, noun string, color pterm.Color) {
	if n == 0 {
		SuccessColorFG.Print(0)
	} else {
		color.Print(n)
	}

	if n == 1 {
		fmt.Print(" " + noun)
	} else {
		fmt.Print(" " + noun + "s")
	}
}

// displayCompilationFinished displays the footer summarizing a compilation
func displayCompilationFinished(success bool, errorCount, warningCount int) {
	fmt.Println()

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")
	printCount(errorCount, "error", ErrorColorFG)
	fmt.Print(", ")
	printCount(warningCount, "warning", WarnColorFG)
	fmt.Println(")")
}
