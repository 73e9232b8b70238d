package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
		warning bool
	}{
		{
			name:    "configuration error",
			code:    "E101",
			wantMsg: "Live route used outside a router",
			wantCat: CategoryConfig,
		},
		{
			name:    "pattern error",
			code:    "E102",
			wantMsg: "Invalid path pattern",
			wantCat: CategoryPattern,
		},
		{
			name:    "usage warning",
			code:    "W201",
			wantMsg: "Component and Render used in the same route",
			wantCat: CategoryUsage,
			warning: true,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
			if err.IsWarning() != tt.warning {
				t.Errorf("IsWarning() = %v, want %v", err.IsWarning(), tt.warning)
			}
		})
	}
}

func TestRegistryCodesArePrefixedBySeverity(t *testing.T) {
	for _, code := range Codes() {
		tmpl, _ := Lookup(code)
		switch code[0] {
		case 'E':
			if tmpl.Severity != SeverityError {
				t.Errorf("%s: severity = %v, want error", code, tmpl.Severity)
			}
		case 'W':
			if tmpl.Severity != SeverityWarning {
				t.Errorf("%s: severity = %v, want warning", code, tmpl.Severity)
			}
		default:
			t.Errorf("unexpected code prefix %q", code)
		}
		if !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("%s: DocURL = %q", code, tmpl.DocURL)
		}
	}
}

func TestLiveError_Error(t *testing.T) {
	err := New("E101")
	if got, want := err.Error(), "E101: Live route used outside a router"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New("E102").Wrap(fmt.Errorf("missing )"))
	if got, want := wrapped.Error(), "E102: Invalid path pattern: missing )"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &LiveError{Message: "test error"}
	if bare.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "test error")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("evaluate: %w", New("E101"))
	if !HasCode(err, "E101") {
		t.Error("HasCode(E101) = false, want true")
	}
	if HasCode(err, "E102") {
		t.Error("HasCode(E102) = true, want false")
	}
	if HasCode(stderrors.New("plain"), "E101") {
		t.Error("HasCode on plain error = true")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E103") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	le := New("E101")
	if FromError(fmt.Errorf("ctx: %w", le), "E103") != le {
		t.Error("FromError should unwrap to the existing LiveError")
	}

	plain := stderrors.New("boom")
	got := FromError(plain, "E103")
	if got.Code != "E103" || got.Wrapped != plain {
		t.Errorf("FromError = %+v", got)
	}
	if !stderrors.Is(got, plain) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E101").
		WithDetail(`route "/a" was evaluated with a nil RouterContext`).
		WithSuggestion("Mount the route through liveroute.Host").
		Format()

	for _, want := range []string{
		"ERROR E101: Live route used outside a router",
		`route "/a" was evaluated with a nil RouterContext`,
		"Hint: Mount the route through liveroute.Host",
		"Learn more: https://github.com/vango-dev/liveroute/blob/main/docs/errors.md#E101",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}

	warn := New("W204").Format()
	if !strings.Contains(warn, "WARNING W204") {
		t.Errorf("warning Format() = %q", warn)
	}
}

func TestFormatCompact(t *testing.T) {
	got := New("E104").WithDetail("cacheLimit must not be negative").FormatCompact()
	want := "E104: Invalid config (cacheLimit must not be negative)"
	if got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	var decoded map[string]string
	raw := New("W206").Wrap(stderrors.New("nil node")).FormatJSON()
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v\n%s", err, raw)
	}
	if decoded["code"] != "W206" || decoded["severity"] != "warning" || decoded["cause"] != "nil node" {
		t.Errorf("FormatJSON() = %s", raw)
	}
}

func TestFprintPlainError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("disk full"))
	if !strings.Contains(buf.String(), "ERROR: disk full") {
		t.Errorf("Fprint() = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 40), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}
