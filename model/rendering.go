package model

import (
	"io"
	"os/exec"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearCmd = "clear"
)

// TerminalRenderer draws a universe as text, two columns per cell.
type TerminalRenderer struct {
	Out   io.Writer
	Color bool
}

func NewTerminalRenderer(out io.Writer, color bool) *TerminalRenderer {
	return &TerminalRenderer{Out: out, Color: color}
}

// Display renders the current generation
func (r *TerminalRenderer) Display(u *Universe) error {
	live := gridPosBlock
	if r.Color {
		live = aurora.Green(gridPosBlock).String()
	}

	cells := u.Cells()
	var b strings.Builder
	for row := range cells.Height() {
		for col := range cells.Width() {
			if cells.Alive(row, col) {
				b.WriteString(live)
			} else {
				b.WriteString(gridPosEmpty)
			}
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(r.Out, b.String())
	return errors.Wrap(err, "[Display] failed to write grid")
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.Out
	return errors.Wrap(cmd.Run(), "[Clear] failed to clear terminal")
}
