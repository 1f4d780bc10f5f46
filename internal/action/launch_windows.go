//go:build windows

package action

import "os/exec"

// launch opens url with the shell's registered protocol handler.
func launch(url string) error {
	cmd := exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	return cmd.Start()
}
