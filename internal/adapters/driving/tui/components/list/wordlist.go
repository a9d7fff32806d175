// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wordbook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wordbook/internal/core/domain"
)

// emptyWordLabel renders the empty string, which is a legal word.
const emptyWordLabel = `""`

// WordList displays the alphabetized words with a scrolling cursor.
type WordList struct {
	words    []domain.Word
	version  uint64
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewWordList creates a new word list component.
func NewWordList(s *styles.Styles) *WordList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &WordList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the word list.
func (l *WordList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *WordList) Update(msg tea.Msg) (*WordList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			l.selected = max(len(l.words)-1, 0)
		}
	}
	return l, nil
}

// View renders the word list.
func (l *WordList) View() string {
	header := l.styles.Title.Render(fmt.Sprintf("Words (%d)", len(l.words)))
	if len(l.words) == 0 {
		return header + "\n\n" + l.styles.Muted.Render("No words yet. Type one and press enter.")
	}

	start, end := l.visibleRange()
	lines := make([]string, 0, end-start+2)
	lines = append(lines, header, "")
	for i := start; i < end; i++ {
		lines = append(lines, l.renderWord(i))
	}
	return strings.Join(lines, "\n")
}

// visibleRange returns the window of words that fits the height, keeping
// the cursor in view.
func (l *WordList) visibleRange() (int, int) {
	visible := max(l.height-2, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	return start, min(start+visible, len(l.words))
}

func (l *WordList) renderWord(index int) string {
	text := l.words[index].Text
	if text == "" {
		text = emptyWordLabel
	}

	if maxLen := max(l.width-4, 10); len(text) > maxLen {
		text = text[:maxLen-3] + "..."
	}

	if index == l.selected {
		return l.styles.Cursor.Render("> " + text)
	}
	return l.styles.Word.Render("  " + text)
}

// SetSnapshot replaces the displayed words. The cursor stays on the same
// word when it survives the update, otherwise it is clamped.
func (l *WordList) SetSnapshot(snap domain.Snapshot) {
	var current string
	hadCurrent := l.selected < len(l.words)
	if hadCurrent {
		current = l.words[l.selected].Text
	}

	l.words = snap.Words
	l.version = snap.Version

	if hadCurrent {
		for i, w := range l.words {
			if w.Text == current {
				l.selected = i
				return
			}
		}
	}
	l.selected = min(l.selected, max(len(l.words)-1, 0))
}

// Words returns the displayed words.
func (l *WordList) Words() []domain.Word {
	return l.words
}

// Version returns the version of the displayed snapshot.
func (l *WordList) Version() uint64 {
	return l.version
}

// Selected returns the index of the word under the cursor.
func (l *WordList) Selected() int {
	return l.selected
}

// SelectedWord returns the word under the cursor, if any.
func (l *WordList) SelectedWord() (domain.Word, bool) {
	if l.selected >= len(l.words) {
		return domain.Word{}, false
	}
	return l.words[l.selected], true
}

// MoveUp moves the cursor up.
func (l *WordList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the cursor down.
func (l *WordList) MoveDown() {
	if l.selected < len(l.words)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *WordList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of words.
func (l *WordList) Count() int {
	return len(l.words)
}
