package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"minkafka/internal/config"
	"minkafka/pkg/logging"
)

// Launcher starts the scripts shipped in a Kafka installation.
type Launcher struct {
	installDir string
	platform   config.Platform
}

// NewLauncher creates a launcher rooted at installDir. platform must already
// be resolved to windows or unix.
func NewLauncher(installDir string, platform config.Platform) *Launcher {
	return &Launcher{installDir: installDir, platform: platform}
}

// InstallDir returns the installation root the launcher resolves scripts against.
func (l *Launcher) InstallDir() string {
	return l.installDir
}

// invocation is the concrete OS command for a script name.
type invocation struct {
	Script  string
	Path    string
	Args    []string
	CmdLine string // windows only: verbatim command line handed to cmd.exe
}

// resolve maps a command name to its script and the interpreter invocation.
// On windows the arguments are joined into one string after the script, the
// way cmd.exe /c expects them.
func (l *Launcher) resolve(command string, args []string) invocation {
	if l.platform == config.PlatformWindows {
		script := filepath.Join(l.installDir, "bin", "windows", command+".bat")
		line := strings.TrimSpace(script + " " + strings.Join(args, " "))
		return invocation{
			Script:  script,
			Path:    "cmd.exe",
			Args:    []string{"/c", line},
			CmdLine: "cmd.exe /c " + line,
		}
	}

	script := filepath.Join(l.installDir, "bin", command+".sh")
	return invocation{
		Script: script,
		Path:   "/bin/sh",
		Args:   append([]string{script}, args...),
	}
}

// Run launches command with args and returns as soon as the OS has started
// the process. Standard output and standard error are captured through pipes.
// workingDir defaults to the installation root. A failure to launch is
// reported as *LaunchError and no Process is returned.
func (l *Launcher) Run(command string, args []string, workingDir string) (*Process, error) {
	inv := l.resolve(command, args)
	if workingDir == "" {
		workingDir = l.installDir
	}

	if _, err := os.Stat(inv.Script); err != nil {
		return nil, &LaunchError{Command: command, Script: inv.Script, Err: err}
	}

	cmd := exec.Command(inv.Path, inv.Args...)
	cmd.Dir = workingDir
	configureCommand(cmd, inv)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &LaunchError{Command: command, Script: inv.Script, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &LaunchError{Command: command, Script: inv.Script, Err: err}
	}

	logging.Debug("Runner", "Launching %s: %s %v", command, inv.Path, inv.Args)
	if err := cmd.Start(); err != nil {
		logging.Error("Runner", err, "Failed to launch %s", command)
		return nil, &LaunchError{Command: command, Script: inv.Script, Err: err}
	}
	logging.Info("Runner", "Launched %s (pid %d)", command, cmd.Process.Pid)

	return &Process{
		Command: command,
		Pid:     cmd.Process.Pid,
		Started: time.Now(),
		Stdout:  stdout,
		Stderr:  stderr,
		cmd:     cmd,
	}, nil
}

// Process is a live OS process plus its two output streams. It is owned by
// whoever called Run until Wait has returned.
type Process struct {
	Command string
	Pid     int
	Started time.Time

	// Stdout and Stderr must be read to EOF before calling Wait.
	Stdout io.ReadCloser
	Stderr io.ReadCloser

	cmd      *exec.Cmd
	waitOnce sync.Once
	exitCode int
	waitErr  error
}

// Wait reaps the process. It returns nil for exit code 0, *ServiceExitError
// for any other exit code and the underlying error otherwise. It is safe to
// call more than once; later calls return the first result.
func (p *Process) Wait() (int, error) {
	p.waitOnce.Do(func() {
		err := p.cmd.Wait()
		var exitErr *exec.ExitError
		switch {
		case err == nil:
			p.exitCode = 0
		case errors.As(err, &exitErr):
			p.exitCode = exitErr.ExitCode()
			p.waitErr = &ServiceExitError{Command: p.Command, ExitCode: p.exitCode}
		default:
			p.exitCode = -1
			p.waitErr = fmt.Errorf("failed to wait for %s: %w", p.Command, err)
		}
		logging.Debug("Runner", "%s (pid %d) exited with code %d after %s", p.Command, p.Pid, p.exitCode, time.Since(p.Started).Round(time.Millisecond))
	})
	return p.exitCode, p.waitErr
}

// Kill terminates the process and every child it started.
func (p *Process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return killProcessTree(p.cmd.Process)
}

// Result is the collected outcome of a process run to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Collect drains both streams concurrently, waits for exit and returns the
// captured text. The error follows Wait; a *ServiceExitError carries the
// captured stderr.
func (p *Process) Collect() (Result, error) {
	var stdout, stderr bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(&stdout, p.Stdout)
	}()
	go func() {
		defer wg.Done()
		_, _ = io.Copy(&stderr, p.Stderr)
	}()
	wg.Wait()

	code, err := p.Wait()
	res := Result{ExitCode: code, Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *ServiceExitError
	if errors.As(err, &exitErr) {
		exitErr.Stderr = res.Stderr
	}
	return res, err
}
