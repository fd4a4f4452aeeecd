package view

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-universe/model"
	"github.com/sheikhrachel/go-universe/utils"
)

const (
	viewField  = "universe"
	viewStatus = "status"
	viewHelp   = "help"

	leftColumnWidth = 28
	minRunInterval  = 10 * time.Millisecond
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// Console is an interactive terminal front end for a universe.
//
// Every access to the universe happens on the gocui main loop, either from a
// key handler or from a function queued with Gui.Update.
type Console struct {
	u      *model.Universe
	config utils.Config
	g      *gocui.Gui
	k      []keyBinding

	running bool
	stopCh  chan struct{}

	liveFiller string
	deadFiller string
}

func NewConsole(u *model.Universe, config utils.Config) (*Console, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsole] failed to open terminal")
	}

	c := &Console{
		u:          u,
		config:     config,
		g:          g,
		liveFiller: "█",
		deadFiller: "░",
	}
	if config.Run.Color {
		c.liveFiller = aurora.Green("█").BgBrightGreen().String()
	}

	g.Mouse = true
	c.k = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", c.cmdQuit, ""},
		{'n', "N", "Next", c.cmdNext, ""},
		{'r', "R", "Run", c.cmdRun, ""},
		{'s', "S", "Stop", c.cmdStop, ""},
		{'c', "C", "Clear", c.cmdClear, ""},
		{'w', "W", "Randomise", c.cmdRandomise, ""},
		{'b', "B", "Back to seed", c.cmdRestore, ""},
		{'g', "G", "Glider", c.cmdGlider, ""},
		{'p', "P", "Pulsar", c.cmdPulsar, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle cell", c.cmdToggle, viewField},
	}
	g.SetManagerFunc(c.layout)

	for _, kb := range c.k {
		h := kb.handler
		if err = g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			g.Close()
			return nil, errors.Wrapf(err, "[NewConsole] failed to bind %s", kb.name)
		}
	}
	return c, nil
}

// Start blocks until the user quits.
func (c *Console) Start() error {
	defer c.g.Close()
	if err := c.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[Start] console main loop failed")
	}
	return nil
}

func (c *Console) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxX <= leftColumnWidth+2 || maxY < 6 {
		return errors.Errorf("[layout] terminal too small: %dx%d", maxX, maxY)
	}

	if v, err := g.SetView(viewStatus, 0, 0, leftColumnWidth, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}

	if v, err := g.SetView(viewField, leftColumnWidth+1, 0, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Universe"
	}

	if v, err := g.SetView(viewHelp, -1, maxY-3, maxX, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		_, _ = fmt.Fprintln(v, helpLine(c.k))
	}

	return c.render(g)
}

func (c *Console) render(g *gocui.Gui) error {
	if v, err := g.View(viewField); err == nil {
		v.Clear()
		maxW, maxH := v.Size()
		_, _ = fmt.Fprint(v, fieldText(c.u.Cells(), maxW, maxH, c.liveFiller, c.deadFiller))
	}

	if v, err := g.View(viewStatus); err == nil {
		v.Clear()
		mode := aurora.Colorize("waiting", aurora.BlueFg).String()
		if c.running {
			mode = aurora.Colorize("running", aurora.CyanFg).String()
		}
		_, _ = fmt.Fprintln(v, renderProp("Dimension", "%v x %v", c.u.Width(), c.u.Height()))
		_, _ = fmt.Fprintln(v, renderProp("Seeding", "%v", c.config.Universe.SeedStrategy))
		_, _ = fmt.Fprintln(v, renderProp("Generation", "%v", c.u.Generation()))
		_, _ = fmt.Fprintln(v, renderProp("Live cells", "%v", c.u.LiveCells()))
		_, _ = fmt.Fprintln(v, renderProp("Interval", "%v", c.runInterval()))
		_, _ = fmt.Fprintln(v, renderProp("Mode", "%v", mode))
	}
	return nil
}

// fieldText draws at most maxW x maxH cells of the view, one character each.
func fieldText(cells model.CellsView, maxW, maxH int, live, dead string) string {
	var b bytes.Buffer
	rows := min(int(cells.Height()), maxH)
	cols := min(int(cells.Width()), maxW)
	for row := 0; row < rows; row++ {
		if row != 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			if cells.Alive(uint32(row), uint32(col)) {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
	}
	return b.String()
}

func helpLine(k []keyBinding) string {
	var b bytes.Buffer
	b.WriteString("KEYS: ")
	for i, kb := range k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(kb.name).String())
		b.WriteString(": ")
		b.WriteString(kb.descr)
	}
	return b.String()
}

func renderProp(name string, valueFormat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueFormat, values...)
}

func (c *Console) runInterval() time.Duration {
	return max(c.config.Run.FrameRate, minRunInterval)
}

// runLoop queues one tick per interval until stop is closed
func (c *Console) runLoop(stop <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.g.Update(c.tick)
		}
	}
}

func (c *Console) tick(g *gocui.Gui) error {
	if !c.running {
		return nil
	}
	c.u.Tick()
	if limit := c.config.Run.MaxGenerations; limit > 0 && c.u.Generation() >= uint64(limit) {
		c.stop()
	}
	return c.render(g)
}

func (c *Console) stop() {
	if !c.running {
		return
	}
	close(c.stopCh)
	c.running = false
}

func (c *Console) cmdQuit(_ *gocui.View) error {
	c.stop()
	return gocui.ErrQuit
}

func (c *Console) cmdNext(_ *gocui.View) error {
	c.u.Tick()
	return c.render(c.g)
}

func (c *Console) cmdRun(_ *gocui.View) error {
	if c.running {
		return nil
	}
	c.running = true
	c.stopCh = make(chan struct{})
	go c.runLoop(c.stopCh, c.runInterval())
	return c.render(c.g)
}

func (c *Console) cmdStop(_ *gocui.View) error {
	c.stop()
	return c.render(c.g)
}

func (c *Console) cmdClear(_ *gocui.View) error {
	c.stop()
	c.u.Clear()
	return c.render(c.g)
}

func (c *Console) cmdRandomise(_ *gocui.View) error {
	c.u.Randomise()
	return c.render(c.g)
}

func (c *Console) cmdRestore(_ *gocui.View) error {
	c.u.Restore()
	return c.render(c.g)
}

func (c *Console) cmdGlider(_ *gocui.View) error {
	c.u.AddGlider(c.u.Height()/2, c.u.Width()/2)
	return c.render(c.g)
}

func (c *Console) cmdPulsar(_ *gocui.View) error {
	c.u.AddPulsar(c.u.Height()/2, c.u.Width()/2)
	return c.render(c.g)
}

func (c *Console) cmdToggle(v *gocui.View) error {
	cx, cy := v.Cursor()
	if cx < 0 || cy < 0 || cx >= int(c.u.Width()) || cy >= int(c.u.Height()) {
		return nil
	}
	c.u.ToggleCell(uint32(cy), uint32(cx))
	return c.render(c.g)
}
