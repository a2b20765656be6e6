package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/bitsctl/internal/protocol/bits"
	"github.com/danmuck/bitsctl/internal/protocol/packet"
)

func TestRunHexArgument(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"C0015000016115A2E0802F182340"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "P1: 23\nP2: ") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunInputFileAndTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("38006F45291200\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	var out bytes.Buffer
	if err := run([]string{"--input", path, "--tree", "--log-level", "off"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "less_than v1 subs=2 length_type=total_bits len=49\n" +
		"  literal v6 value=10 len=11\n" +
		"  literal v2 value=20 len=16\n" +
		"P1: 9\nP2: 1\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunConfigFileWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "msg.txt")
	if err := os.WriteFile(input, []byte("D2FE28"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.toml")
	body := "input = \"" + filepath.ToSlash(input) + "\"\nprint_tree = true\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	if err := run([]string{"--config", cfgPath, "--tree=false"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "P1: 6\nP2: 2021\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunExampleConfig(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"--config", "ex.config.toml", "--tree=false", "--log-level", "off"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "P1: 16\nP2: 15\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunFailures(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"D2G"}, &out)
	if !errors.Is(err, bits.ErrInvalidDigit) {
		t.Fatalf("expected ErrInvalidDigit, got %v", err)
	}

	err = run([]string{"9C005AC2F8F0", "extra"}, &out)
	if err == nil {
		t.Fatalf("expected error for extra argument")
	}

	err = run([]string{"--input", filepath.Join(t.TempDir(), "missing.txt")}, &out)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing input error, got %v", err)
	}

	// sum with count 0 is rejected before evaluation
	empty, encErr := bits.FromBinary("000" + "000" + "1" + "00000000000")
	if encErr != nil {
		t.Fatalf("from binary: %v", encErr)
	}
	err = run([]string{empty.Hex()}, &out)
	if !errors.Is(err, packet.ErrInvalidArity) {
		t.Fatalf("expected ErrInvalidArity, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on failure, got %q", out.String())
	}
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-h"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "usage: bitsctl") || !strings.Contains(out.String(), "--config") {
		t.Fatalf("unexpected help: %q", out.String())
	}
}
