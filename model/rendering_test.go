package model

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminalRendererDisplay(t *testing.T) {
	u := newEmptyUniverse(t, 3, 2)
	u.ToggleCell(0, 1)
	var out bytes.Buffer

	if err := NewTerminalRenderer(&out, false).Display(u); err != nil {
		t.Fatalf("Display: %v", err)
	}

	want := "  ██  \n      \n"
	if out.String() != want {
		t.Fatalf("Display() = %q, expected %q", out.String(), want)
	}
}

func TestTerminalRendererColor(t *testing.T) {
	u := newEmptyUniverse(t, 2, 1)
	u.ToggleCell(0, 0)
	var out bytes.Buffer

	if err := NewTerminalRenderer(&out, true).Display(u); err != nil {
		t.Fatalf("Display: %v", err)
	}

	if !strings.Contains(out.String(), "\x1b[") || !strings.Contains(out.String(), gridPosBlock) {
		t.Fatalf("expected an ANSI colored block, got %q", out.String())
	}
}
