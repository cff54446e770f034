package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/alnah/go-mdview/internal/server"
	"github.com/go-rod/rod/lib/launcher"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	Display  string `json:"display,omitempty"`
	Loopback bool   `json:"loopback"`
}

// doctorProbe holds the checks that touch the machine, swappable in tests.
type doctorProbe struct {
	getenv     func(string) string
	lookPath   func() (string, bool)
	stat       func(string) error
	version    func(bin string) (string, error)
	dockerenv  func() bool
	listenLoop func() error
	goos       string
}

// systemProbe returns the probe used outside tests.
func systemProbe(getenv func(string) string) doctorProbe {
	return doctorProbe{
		getenv:   getenv,
		lookPath: launcher.LookPath,
		stat: func(path string) error {
			_, err := os.Stat(path)
			return err
		},
		version: func(bin string) (string, error) {
			out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- browser path is user configuration
			return strings.TrimSpace(string(out)), err
		},
		dockerenv: func() bool {
			_, err := os.Stat("/.dockerenv")
			return err == nil
		},
		listenLoop: func() error {
			ln, err := server.Listen(server.DefaultAddr)
			if err != nil {
				return err
			}
			return ln.Close()
		},
		goos: runtime.GOOS,
	}
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(systemProbe(env.Getenv))

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(p doctorProbe) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         p.goos,
			Arch:       runtime.GOARCH,
			NoSandbox:  p.getenv("ROD_NO_SANDBOX"),
			BrowserBin: p.getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result, p)
	checkEnvironment(result, p)
	checkSystem(result, p)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult, p doctorProbe) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = p.lookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if err := p.stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	if v, err := p.version(chromePath); err == nil {
		result.Chrome.Version = v
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container environments.
func checkEnvironment(result *doctorResult, p doctorProbe) {
	result.Env.Container, result.Env.ContainerHint = isContainer(p)

	if result.Env.Container && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(p doctorProbe) (bool, string) {
	if p.getenv("MDVIEW_CONTAINER") == "1" {
		return true, "MDVIEW_CONTAINER=1"
	}
	if p.dockerenv() {
		return true, "/.dockerenv"
	}
	if v := p.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if p.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies a display is available and loopback listening works.
func checkSystem(result *doctorResult, p doctorProbe) {
	if p.goos == "linux" {
		switch {
		case p.getenv("WAYLAND_DISPLAY") != "":
			result.System.Display = "wayland:" + p.getenv("WAYLAND_DISPLAY")
		case p.getenv("DISPLAY") != "":
			result.System.Display = "x11:" + p.getenv("DISPLAY")
		default:
			result.Errors = append(result.Errors,
				"No DISPLAY or WAYLAND_DISPLAY set. The viewer needs a graphical session")
		}
	}

	if err := p.listenLoop(); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Cannot listen on loopback: %v", err))
	} else {
		result.System.Loopback = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdview doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.Display != "" {
		fmt.Fprintf(w, "  [OK] Display: %s\n", r.System.Display)
	}
	if r.System.Loopback {
		fmt.Fprintln(w, "  [OK] Loopback: listening works")
	} else {
		fmt.Fprintln(w, "  [ERROR] Loopback: cannot listen")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to view")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
