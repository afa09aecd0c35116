package utils

import (
	"path/filepath"
	"testing"
	"time"
)

func TestParseValue(t *testing.T) {
	if v, ok := ParseValue(" 42 ").(int); !ok || v != 42 {
		t.Fatalf("expected int 42, got %#v", ParseValue(" 42 "))
	}
	if v, ok := ParseValue("2.5").(float64); !ok || v != 2.5 {
		t.Fatalf("expected float 2.5, got %#v", ParseValue("2.5"))
	}
	if v, ok := ParseValue("All White").(string); !ok || v != "All White" {
		t.Fatalf("expected the string back, got %#v", ParseValue("All White"))
	}
}

func TestNumeric(t *testing.T) {
	for _, in := range []interface{}{3, int64(3), 3.0, float32(3), []byte("3")} {
		if f, err := Numeric(in); err != nil || f != 3 {
			t.Errorf("Numeric(%#v): expected 3, got %v (%v)", in, f, err)
		}
	}
	for _, in := range []interface{}{"", "abc", nil, true} {
		if _, err := Numeric(in); err == nil {
			t.Errorf("Numeric(%#v): expected an error", in)
		}
	}
}

func TestString(t *testing.T) {
	cases := map[interface{}]string{
		nil:      "",
		"2021":   "2021",
		2021:     "2021",
		2021.0:   "2021",
		2.5:      "2.5",
		int64(7): "7",
		true:     "true",
	}
	for in, want := range cases {
		if got := String(in); got != want {
			t.Errorf("String(%#v): expected %q, got %q", in, want, got)
		}
	}
}

func TestCleanHeader(t *testing.T) {
	cases := map[string]string{
		" Year ":           "Year",
		"\"BIPOC\"":        "BIPOC",
		"\ufeffYear":       "Year",
		"\ufeff\"rowNum\"": "rowNum",
	}
	for in, want := range cases {
		if got := CleanHeader(in); got != want {
			t.Errorf("CleanHeader(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestParseDuration(t *testing.T) {
	if ParseDuration("", time.Second) != time.Second || ParseDuration("bad", time.Second) != time.Second {
		t.Fatalf("expected the fallback")
	}
	if ParseDuration("2m", time.Second) != 2*time.Minute {
		t.Fatalf("expected 2m")
	}
}

func TestOutputManager(t *testing.T) {
	base := t.TempDir()
	om := NewOutputManager(base)
	path, err := om.GetOutputFilePath("run", "../../escape.json")
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(base, "run", "escape.json") {
		t.Fatalf("expected the file inside the run dir, got %q", path)
	}
	if om.GetFileType(path) != "json" || om.GetFileType("x.svg") != "svg" || om.GetFileType("x") != "unknown" {
		t.Fatalf("unexpected file types")
	}
	if _, err := om.GetFileSize(path); err == nil {
		t.Fatalf("expected an error for a file not written yet")
	}
}
