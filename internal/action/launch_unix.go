//go:build !windows

package action

import (
	"os/exec"
	"runtime"
)

// launch opens url with the desktop's URL handler. On macOS this is the
// open binary; elsewhere xdg-open.
func launch(url string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	cmd := exec.Command(opener, url)
	return cmd.Start()
}
