package sink

import (
	"os/exec"
	"runtime"
)

// Present opens the saved workbook with the platform's default viewer. The
// viewer process is started and not waited on.
func Present(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
