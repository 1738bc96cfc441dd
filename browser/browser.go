// Package browser provides utilities for launching URLs in the user's web
// browser. The system default browser is opened via github.com/pkg/browser;
// an explicit Firefox target is supported for environments where the default
// browser cannot complete an interactive login.
package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/browser"
)

// Target represents the browser target for launching URLs.
type Target string

const (
	// TargetDefault uses the system default browser
	TargetDefault Target = "default"
	// TargetFirefox launches a Firefox installation directly
	TargetFirefox Target = "firefox"
	// TargetNone disables browser launching
	TargetNone Target = "none"
)

// ValidTargets returns all valid browser target values.
func ValidTargets() []Target {
	return []Target{TargetDefault, TargetFirefox, TargetNone}
}

// IsValid checks if a target string is valid.
func IsValid(target string) bool {
	t := Target(target)
	for _, valid := range ValidTargets() {
		if t == valid {
			return true
		}
	}
	return false
}

// LaunchOptions contains options for launching a browser.
type LaunchOptions struct {
	// URL to open
	URL string
	// Target browser to use
	Target Target
	// Timeout for the launch command (default 5 seconds)
	Timeout time.Duration
}

// Launch opens the specified URL in the browser determined by the target.
// The launch happens in a separate goroutine so the caller is never blocked;
// a failed launch is reported on stderr and otherwise ignored.
func Launch(opts LaunchOptions) error {
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}

	// Only http and https URLs may be handed to a browser.
	if !strings.HasPrefix(opts.URL, "http://") && !strings.HasPrefix(opts.URL, "https://") {
		return fmt.Errorf("invalid URL scheme: URL must start with http:// or https://")
	}

	if opts.Target == TargetNone {
		return nil
	}
	if !IsValid(string(opts.Target)) {
		return fmt.Errorf("unsupported browser target: %s (valid options: %s)", opts.Target, FormatValidTargets())
	}

	go func() {
		if err := launchSync(opts.URL, opts.Target, opts.Timeout); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open browser automatically: %v\n", err)
		}
	}()

	return nil
}

// launchSync performs the actual browser launch synchronously.
func launchSync(url string, target Target, timeout time.Duration) error {
	switch target {
	case TargetFirefox:
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return firefoxCommand(ctx, url).Run()
	default:
		return browser.OpenURL(url)
	}
}

// firefoxCommand builds the command that launches Firefox with the URL.
func firefoxCommand(ctx context.Context, url string) *exec.Cmd {
	switch runtime.GOOS {
	case "windows":
		return exec.CommandContext(ctx, "cmd", "/c", "start", "firefox", url)
	case "darwin":
		return exec.CommandContext(ctx, "open", "-a", "Firefox", url)
	default:
		return exec.CommandContext(ctx, "firefox", url)
	}
}

// GetTargetDisplayName returns a human-readable name for the browser target.
func GetTargetDisplayName(target Target) string {
	switch target {
	case TargetFirefox:
		return "Firefox"
	case TargetNone:
		return "none"
	default:
		return "default browser"
	}
}

// FormatValidTargets returns a comma-separated list of valid targets.
func FormatValidTargets() string {
	targets := ValidTargets()
	strs := make([]string, len(targets))
	for i, t := range targets {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}
