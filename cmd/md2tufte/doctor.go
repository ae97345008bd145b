package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	md2tufte "github.com/alnah/go-md2tufte"
	"github.com/alnah/go-md2tufte/internal/fileutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	Passes   []string   `json:"default_passes"`
	Styles   []string   `json:"styles"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results. Chrome is only
// needed for PDF export, so a missing browser is a warning.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	CI           bool   `json:"ci"`
	Container    bool   `json:"container"`
	NoSandbox    string `json:"rod_no_sandbox"`
	BrowserBin   string `json:"rod_browser_bin"`
	TempWritable bool   `json:"temp_writable"`
}

// lookChrome finds the browser rod would launch. Tests replace it.
var lookChrome = launcher.LookPath

// runDoctorCmd checks the environment and returns an exit code:
// 0 when ready (warnings included), 1 on errors.
func runDoctorCmd(args []string, env *Environment) int {
	result := runDoctor(env)

	if len(args) > 0 && args[0] == "--json" {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor(env *Environment) *doctorResult {
	r := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  env.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: env.Getenv("ROD_BROWSER_BIN"),
			Container:  fileutil.FileExists("/.dockerenv") || env.Getenv("container") != "",
		},
		Passes: md2tufte.DefaultPasses(),
		Styles: md2tufte.StyleNames(),
	}

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if env.Getenv(v) != "" {
			r.Env.CI = true
			break
		}
	}

	checkChrome(r)
	checkTempDir(r)

	if (r.Env.CI || r.Env.Container) && r.Env.NoSandbox != "1" && r.Chrome.Found {
		r.Warnings = append(r.Warnings, "container/CI detected but ROD_NO_SANDBOX is not set; PDF export may fail")
	}

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

func checkChrome(r *doctorResult) {
	path := r.Env.BrowserBin
	if path == "" {
		var found bool
		if path, found = lookChrome(); !found {
			r.Warnings = append(r.Warnings, "Chrome/Chromium not found; HTML works, --pdf will download a browser on first use")
			return
		}
	}
	if _, err := os.Stat(path); err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Chrome not found at %s", path))
		return
	}

	r.Chrome.Found = true
	r.Chrome.Path = path
	r.Chrome.Sandbox = r.Env.NoSandbox != "1"

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("could not get Chrome version: %v", err))
		return
	}
	r.Chrome.Version = strings.TrimSpace(string(out))
}

// checkTempDir verifies the directory used for PDF rendering is writable.
func checkTempDir(r *doctorResult) {
	path, cleanup, err := fileutil.WriteTempFile("ok", "txt")
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("temp directory not writable: %v", err))
		return
	}
	cleanup()
	r.Env.TempWritable = path != ""
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2tufte doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (PDF export)")
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
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.Env.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	}
	fmt.Fprintf(w, "  [OK] Passes: %s\n", strings.Join(r.Passes, ", "))
	fmt.Fprintf(w, "  [OK] Styles: %s\n", strings.Join(r.Styles, ", "))
	fmt.Fprintln(w)

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "[WARN] %s\n", warn)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "[ERROR] %s\n", e)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
