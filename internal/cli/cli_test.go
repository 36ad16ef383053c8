package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/tui"
)

type scriptedDriver struct {
	inputs    []string
	passwords []string
	confirms  []bool
}

func (s *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", tui.ErrAborted
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *scriptedDriver) Password(context.Context, tui.InputConfig) (string, error) {
	if len(s.passwords) == 0 {
		return "", tui.ErrAborted
	}
	v := s.passwords[0]
	s.passwords = s.passwords[1:]
	return v, nil
}

func (s *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", tui.ErrAborted
}

func (s *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(s.confirms) == 0 {
		return false, tui.ErrAborted
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func (s *scriptedDriver) Info(context.Context, string) error { return nil }

type harness struct {
	app    *App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, environ map[string]string, driver tui.PromptDriver) *harness {
	t.Helper()
	if environ == nil {
		environ = map[string]string{}
	}
	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	h.app = &App{Stdout: h.stdout, Stderr: h.stderr, Environ: environ, Driver: driver}
	return h
}

func (h *harness) run(t *testing.T, args ...string) int {
	t.Helper()
	args = append([]string{"-env", filepath.Join(t.TempDir(), "missing.env")}, args...)
	return h.app.Run(context.Background(), args)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestRun_List(t *testing.T) {
	h := newHarness(t, nil, nil)
	if code := h.run(t, "-list"); code != ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, h.stderr)
	}
	want := "contact\tContact us\t3 fields\nregistration\tCreate account\t4 fields\n"
	if diff := cmp.Diff(want, h.stdout.String()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ListIncludesDefsDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "survey.yaml", "id: survey\ntitle: Survey\nfields:\n  - name: answer\n")

	h := newHarness(t, map[string]string{"FORMCHECK_DEFS": dir}, nil)
	if code := h.run(t, "-list"); code != ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, h.stderr)
	}
	if !strings.Contains(h.stdout.String(), "survey\tSurvey\t1 fields\n") {
		t.Fatalf("expected survey form in listing, got:\n%s", h.stdout)
	}
}

func TestRun_BatchValid(t *testing.T) {
	values := writeFile(t, t.TempDir(), "values.yaml", strings.Join([]string{
		"full_name: Ada Lovelace",
		"email: ada@example.com",
		"birth_date: 1990-12-10",
		"password: Pa55word!",
	}, "\n"))

	h := newHarness(t, nil, nil)
	if code := h.run(t, "-values", values, "-output", "pretty"); code != ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, h.stderr)
	}
	if diff := cmp.Diff("Create account: valid\n", h.stdout.String()); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_BatchInvalidJSON(t *testing.T) {
	values := writeFile(t, t.TempDir(), "values.json",
		`{"email": "ada@example", "birth_date": "12/10/1990", "password": "Passw0rd!"}`)

	h := newHarness(t, nil, nil)
	if code := h.run(t, "-values", values); code != ExitInvalid {
		t.Fatalf("exit code = %d, want %d", code, ExitInvalid)
	}

	var got report
	if err := json.Unmarshal(h.stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode report: %v\n%s", err, h.stdout)
	}
	want := report{
		Form:  "registration",
		Valid: false,
		Errors: map[string]string{
			"full_name":  "This field cannot be empty.",
			"email":      "This field requires a valid email address.",
			"birth_date": "Invalid date, expected YYYY-MM-DD.",
			"password":   "Password must be at least 8 characters with 2 numbers and 1 symbol (!@#$&*~).",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_BatchPrettyFollowsFieldOrder(t *testing.T) {
	values := writeFile(t, t.TempDir(), "values.yaml", "email: nope\nsubject: hi\nmessage: short\n")

	h := newHarness(t, map[string]string{"FORMCHECK_OUTPUT": "pretty"}, nil)
	if code := h.run(t, "-form", "contact", "-values", values); code != ExitInvalid {
		t.Fatalf("exit code = %d, want %d", code, ExitInvalid)
	}
	want := "Email: This field requires a valid email address.\nMessage: Tell us a little more.\n"
	if diff := cmp.Diff(want, h.stdout.String()); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_OpenAPISchema(t *testing.T) {
	values := writeFile(t, t.TempDir(), "values.yaml", "email: ada@example.com\npassword: Pa55word!\nbirthDate: 1990-12-10\n")

	h := newHarness(t, nil, nil)
	code := h.run(t,
		"-openapi", filepath.Join("..", "..", "pkg", "formdef", "testdata", "openapi.yaml"),
		"-schema", "Signup",
		"-values", values,
		"-output", "pretty",
	)
	if code != ExitOK {
		t.Fatalf("exit code = %d, stdout: %s stderr: %s", code, h.stdout, h.stderr)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown form":   {"-form", "missing"},
		"unknown output": {"-output", "xml", "-list"},
		"missing schema": {"-openapi", "doc.yaml"},
		"extra args":     {"registration"},
		"unknown flag":   {"-nope"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, nil, nil)
			if code := h.run(t, args...); code != ExitUsage {
				t.Fatalf("exit code = %d, want %d", code, ExitUsage)
			}
		})
	}
}

func TestRun_Interactive(t *testing.T) {
	driver := &scriptedDriver{
		inputs:    []string{"Ada", "ada@example.com", "1990-12-10"},
		passwords: []string{"Pa55word!"},
	}
	h := newHarness(t, nil, driver)
	if code := h.run(t, "-output", "form"); code != ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, h.stderr)
	}
	want := "birth_date=1990-12-10&email=ada%40example.com&full_name=Ada&password=%2A%2A%2A%2A%2A%2A%2A%2A\n"
	if diff := cmp.Diff(want, h.stdout.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_InteractiveRejectedAndAborted(t *testing.T) {
	rejected := &scriptedDriver{
		inputs:    []string{"", "ada@example.com", "1990-12-10"},
		passwords: []string{"Pa55word!"},
		confirms:  []bool{false},
	}
	h := newHarness(t, nil, rejected)
	if code := h.run(t); code != ExitInvalid {
		t.Fatalf("rejected exit code = %d, want %d", code, ExitInvalid)
	}

	h = newHarness(t, nil, &scriptedDriver{})
	if code := h.run(t); code != ExitAborted {
		t.Fatalf("aborted exit code = %d, want %d", code, ExitAborted)
	}
	if h.stdout.Len() != 0 {
		t.Fatalf("expected no output, got %q", h.stdout)
	}
}

func TestLoadConfig(t *testing.T) {
	dotenv := writeFile(t, t.TempDir(), ".env", "FORMCHECK_OUTPUT=pretty\nFORMCHECK_DEFS=/srv/forms\n")

	cfg, err := LoadConfig(dotenv, map[string]string{"FORMCHECK_OUTPUT": "form"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{LogLevel: "info", LogFormat: "text", Output: "form", DefsDir: "/srv/forms"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "absent.env"), nil)
	if err != nil {
		t.Fatalf("missing dotenv should be ignored: %v", err)
	}
	if cfg.Output != "json" {
		t.Fatalf("default output = %q", cfg.Output)
	}
}

func TestApplyFlags_OverridesOnlySetFlags(t *testing.T) {
	cfg := Config{LogLevel: "info", Output: "json", DefsDir: "/env"}
	applyFlags(&cfg, options{output: "pretty", defs: "ignored"}, map[string]bool{"output": true})
	if cfg.Output != "pretty" || cfg.DefsDir != "/env" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
