package main

import (
	"encoding/json"
	"strings"
	"testing"
)

// Not parallel: these tests replace lookChrome.

func TestRunDoctorCmd_NoChrome(t *testing.T) {
	orig := lookChrome
	t.Cleanup(func() { lookChrome = orig })
	lookChrome = func() (string, bool) { return "", false }

	env, stdout, _ := testEnv(nil)
	if code := runDoctorCmd(nil, env); code != ExitSuccess {
		t.Errorf("runDoctorCmd() = %d, want %d", code, ExitSuccess)
	}

	out := stdout.String()
	for _, want := range []string{"[WARN] Not found", "Passes: sections", "Status: Ready with warnings"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDoctorCmd_JSON(t *testing.T) {
	orig := lookChrome
	t.Cleanup(func() { lookChrome = orig })
	lookChrome = func() (string, bool) { return "", false }

	env, stdout, _ := testEnv(map[string]string{"CI": "true"})
	if code := runDoctorCmd([]string{"--json"}, env); code != ExitSuccess {
		t.Errorf("runDoctorCmd() = %d, want %d", code, ExitSuccess)
	}

	var got doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if got.Status != statusWarnings || got.Chrome.Found || !got.Env.CI || !got.Env.TempWritable {
		t.Errorf("result = %+v", got)
	}
	if len(got.Styles) == 0 || len(got.Passes) == 0 {
		t.Errorf("styles = %v, passes = %v", got.Styles, got.Passes)
	}
}

func TestRunDoctorCmd_BrowserBinMissing(t *testing.T) {
	orig := lookChrome
	t.Cleanup(func() { lookChrome = orig })
	lookChrome = func() (string, bool) {
		t.Error("lookChrome called despite ROD_BROWSER_BIN")
		return "", false
	}

	env, stdout, _ := testEnv(map[string]string{"ROD_BROWSER_BIN": "/nonexistent/chrome"})
	runDoctorCmd(nil, env)
	if !strings.Contains(stdout.String(), "Chrome not found at /nonexistent/chrome") {
		t.Errorf("output = %s", stdout.String())
	}
}
