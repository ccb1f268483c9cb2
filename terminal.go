package main

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Glyphs drawn for each cell state
type Alphabet struct {
	Empty  rune
	Living rune
}

var DEFAULT_ALPHABET = Alphabet{Empty: ' ', Living: 'o'}

// Terminal owns a tcell screen: raw mode, alternate screen and hidden cursor
// from NewTerminal until Close. It is the display's Renderer and the
// simulation's Sizer.
type Terminal struct {
	screen      tcell.Screen
	alphabet    Alphabet
	emptyStyle  tcell.Style
	livingStyle tcell.Style
	statusStyle tcell.Style

	mu     sync.Mutex    // Serializes drawing with Sync on resize
	status func() string // Optional status line source
	once   sync.Once     // Close runs Fini exactly once
}

// NewTerminal initializes screen and takes over the terminal.
// Failure here means the terminal cannot be driven or measured.
func NewTerminal(screen tcell.Screen, alphabet Alphabet) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	return &Terminal{
		screen:      screen,
		alphabet:    alphabet,
		emptyStyle:  tcell.StyleDefault.Foreground(tcell.ColorBlack),
		livingStyle: tcell.StyleDefault.Foreground(tcell.ColorWhite),
		statusStyle: tcell.StyleDefault.Reverse(true),
	}, nil
}

// SetStatus installs a source for the status line drawn over row 0.
// Must be called before rendering starts.
func (t *Terminal) SetStatus(status func() string) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
}

// Size reports the screen size in cells
func (t *Terminal) Size() (width, height int) {
	return t.screen.Size()
}

// Render redraws the whole frame, then flushes once.
// Cells outside the current screen are clipped by tcell.
func (t *Terminal) Render(frame Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	for y, row := range frame.Cells {
		for x, cell := range row {
			if cell == Living {
				t.screen.SetContent(x, y, t.alphabet.Living, nil, t.livingStyle)
			} else {
				t.screen.SetContent(x, y, t.alphabet.Empty, nil, t.emptyStyle)
			}
		}
	}

	if t.status != nil {
		line := fmt.Sprintf(" gen %d  pop %d  %s ", frame.Generation, frame.Cells.Population(), t.status())
		width, _ := t.screen.Size()
		for x, r := range []rune(line) {
			if x >= width {
				break
			}
			t.screen.SetContent(x, 0, r, nil, t.statusStyle)
		}
	}

	t.screen.Show()
	return nil
}

// ListenForQuit polls terminal events until the screen is closed.
// q, Q, Esc or Ctrl-C call quit once and stop listening; resizes force a
// full repaint.
func (t *Terminal) ListenForQuit(quit func()) {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return // screen finalized
		case *tcell.EventKey:
			if isQuitKey(ev) {
				quit()
				return
			}
		case *tcell.EventResize:
			t.mu.Lock()
			t.screen.Sync()
			t.mu.Unlock()
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Close restores the terminal: main screen, visible cursor, cooked mode.
// Safe to call more than once and from any exit path.
func (t *Terminal) Close() {
	t.once.Do(t.screen.Fini)
}
