package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/liveroute/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeExample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "liveroute.json")
	if _, err := execute(t, "init", "--config", path); err != nil {
		t.Fatalf("init: %v", err)
	}
	return path
}

func TestInit(t *testing.T) {
	path := writeExample(t)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"live-on-bcd"`) {
		t.Errorf("example config missing routes:\n%s", data)
	}

	_, err = execute(t, "init", "--config", path)
	if !errors.HasCode(err, "E103") {
		t.Errorf("init over existing file: err = %v, want E103", err)
	}
	if _, err := execute(t, "init", "--config", path, "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestSimulate(t *testing.T) {
	path := writeExample(t)

	out, err := execute(t, "simulate", "--config", path, "/a", "scroll=300", "/b", "/d", "/a")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	for _, want := range []string{
		"── /a\n  live-on-b        MATCHED    lr-0\n",
		"── scroll 300\n",
		"  live-on-b        HIDDEN     lr-0\n",
		"  patch SetStyle(lr-0, display: none)\n",
		"  live-on-bcd      UNMATCHED  -\n",
		"  always-live      HIDDEN     lr-2\n",
		"  patch RemoveStyle(lr-0, display)\n",
		"  patch ScrollTo(, 0, 300)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSimulateHTML(t *testing.T) {
	path := writeExample(t)

	out, err := execute(t, "simulate", "--config", path, "/a", "/b", "--html")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !strings.Contains(out, `style="display: none"`) || !strings.Contains(out, "Page B") {
		t.Errorf("html output incomplete:\n%s", out)
	}
}

func TestSimulateErrors(t *testing.T) {
	path := writeExample(t)

	if _, err := execute(t, "simulate", "--config", path, "scroll=x"); !errors.HasCode(err, "E104") {
		t.Errorf("bad scroll: err = %v, want E104", err)
	}
	missing := filepath.Join(t.TempDir(), "missing.json")
	if _, err := execute(t, "simulate", "--config", missing, "/a"); !errors.HasCode(err, "E103") {
		t.Errorf("missing config: err = %v, want E103", err)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"/users/:id", "/users/42"}, []string{"matches", "url:   /users/42", `param id = "42"`}},
		{[]string{"/a", "/a/b"}, []string{"matches", "exact: false"}},
		{[]string{"/a", "/a/b", "--exact"}, []string{"does not match"}},
		{[]string{"/A", "/a", "--sensitive"}, []string{"does not match"}},
	}

	for _, tt := range tests {
		out, err := execute(t, append([]string{"match"}, tt.args...)...)
		if err != nil {
			t.Errorf("match %v: %v", tt.args, err)
			continue
		}
		for _, want := range tt.want {
			if !strings.Contains(out, want) {
				t.Errorf("match %v: output missing %q:\n%s", tt.args, want, out)
			}
		}
	}
}

func TestMatchBadPattern(t *testing.T) {
	if _, err := execute(t, "match", "/x/:id([)", "/a"); !errors.HasCode(err, "E102") {
		t.Errorf("err = %v, want E102", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}
