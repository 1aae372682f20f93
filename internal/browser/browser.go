// Package browser opens URLs in the operating system's default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openCommand returns the platform launcher command and leading args.
func openCommand() (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// Open launches url in the default browser without waiting for the
// browser process to exit.
func Open(url string) error {
	name, args := openCommand()
	cmd := exec.Command(name, append(args, url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("browser: open %s: %w", url, err)
	}
	// Reap the launcher process so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
