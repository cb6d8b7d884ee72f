//go:build windows

package process

import "os"

func shellCommand(line string) (string, []string) {
	shell := os.Getenv("ComSpec")
	if shell == "" {
		shell = "cmd.exe"
	}
	return shell, []string{"/C", line}
}
