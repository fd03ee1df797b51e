//go:build windows

package runner

import (
	"os"
	"os/exec"
	"syscall"
)

const createNoWindow = 0x08000000

func configureCommand(cmd *exec.Cmd, inv invocation) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       inv.CmdLine,
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}

func killProcessTree(p *os.Process) error {
	return p.Kill()
}
