//go:build !windows

package process

func shellCommand(line string) (string, []string) {
	return "/bin/sh", []string{"-c", line}
}
