// Package cliout provides structured output formatting for CLI commands.
// It supports human-readable text and JSON output, with consistent styling
// using ANSI colors and Unicode symbols (with ASCII fallbacks).
package cliout

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols for modern CLI output
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolDot     = "•"
)

// ASCII fallback symbols for terminals that don't support Unicode
const (
	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
	ASCIIDot     = "*"
)

var (
	// mu protects global state variables
	mu sync.RWMutex

	globalFormat = FormatDefault
	noColor      = false
)

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	noColor = true
	mu.Unlock()
}

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	mu.Lock()
	noColor = false
	mu.Unlock()
}

func getNoColor() bool {
	mu.RLock()
	defer mu.RUnlock()
	return noColor
}

// colorize wraps text in the given color unless colors are disabled.
func colorize(color, text string) string {
	if getNoColor() {
		return text
	}
	return color + text + Reset
}

// supportsUnicode detects if the terminal supports Unicode symbols
var supportsUnicode = detectUnicodeSupport()

func detectUnicodeSupport() bool {
	if runtime.GOOS == "windows" {
		// Windows Terminal, VS Code terminal, and ConEmu support Unicode
		if os.Getenv("WT_SESSION") != "" {
			return true
		}
		if os.Getenv("TERM_PROGRAM") == "vscode" {
			return true
		}
		if os.Getenv("ConEmuPID") != "" {
			return true
		}
		return os.Getenv("TERM") != ""
	}

	// Unix-like systems generally support Unicode
	return true
}

// getIcon returns the appropriate icon based on Unicode support
func getIcon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// SetFormat sets the global output format.
func SetFormat(format string) error {
	mu.Lock()
	defer mu.Unlock()
	switch format {
	case "default", "":
		globalFormat = FormatDefault
	case "json":
		globalFormat = FormatJSON
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json)", format)
	}
	return nil
}

// IsJSON returns true if the output format is JSON.
func IsJSON() bool {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat == FormatJSON
}

// PrintJSON prints data as indented JSON to stdout.
func PrintJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Header prints a bold header with a divider.
func Header(text string) {
	fmt.Printf("\n%s\n", colorize(Bold, text))
	fmt.Println(strings.Repeat("=", len(text)))
}

// Success prints a success message with a green checkmark.
func Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s %s\n", colorize(BrightGreen, getIcon(SymbolCheck, ASCIICheck)), msg)
}

// Error prints an error message with a red cross.
func Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s %s\n", colorize(BrightRed, getIcon(SymbolCross, ASCIICross)), msg)
}

// Warning prints a warning message with a yellow triangle.
func Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s  %s\n", colorize(BrightYellow, getIcon(SymbolWarning, ASCIIWarning)), msg)
}

// Info prints an info message with a blue info icon.
func Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s  %s\n", colorize(BrightBlue, getIcon(SymbolInfo, ASCIIInfo)), msg)
}

// Item prints an indented item.
func Item(format string, args ...interface{}) {
	fmt.Printf("   %s\n", fmt.Sprintf(format, args...))
}

// Bullet prints a bulleted list item.
func Bullet(format string, args ...interface{}) {
	fmt.Printf("  %s %s\n", getIcon(SymbolDot, ASCIIDot), fmt.Sprintf(format, args...))
}

// Label prints a label and value pair.
func Label(label, value string) {
	fmt.Printf("   %s %s\n", colorize(Dim, fmt.Sprintf("%-14s", label+":")), value)
}

// Plain prints plain text without any formatting.
func Plain(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Newline prints a blank line.
func Newline() {
	fmt.Println()
}

// Hint prints compact hints on a single line with bullet separators.
func Hint(hints ...string) {
	if len(hints) == 0 {
		return
	}
	fmt.Printf("%s\n", colorize(Dim, strings.Join(hints, " • ")))
}

// Muted returns dimmed text.
func Muted(format string, args ...interface{}) string {
	return colorize(Dim, fmt.Sprintf(format, args...))
}

// URL returns a URL styled in bright blue.
func URL(url string) string {
	return colorize(BrightBlue, url)
}

// StatusBadge returns a colored "[STATUS]" badge for report entries.
// PASS is green, SKIP is yellow, FAIL is red; anything else is unstyled.
func StatusBadge(status string) string {
	badge := "[" + status + "]"
	switch strings.ToUpper(status) {
	case "PASS":
		return colorize(BrightGreen, badge)
	case "SKIP":
		return colorize(BrightYellow, badge)
	case "FAIL":
		return colorize(BrightRed, badge)
	default:
		return badge
	}
}
