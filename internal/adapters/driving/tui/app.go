package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wordbook/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/wordbook/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/wordbook/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/wordbook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wordbook/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wordbook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wordbook/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The word list is driven entirely by the subscription: adding or clearing
// words only issues the mutation, and the resulting snapshot arrives on the
// feed like any change made by another client.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	input  *input.WordInput
	list   *list.WordList
	status *status.Bar

	sub   driving.Subscription
	focus messages.Focus
	err   error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	a := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		input:  input.NewWordInput(s),
		list:   list.NewWordList(s),
		status: status.NewBar(s),
		focus:  messages.FocusInput,
	}
	a.status.SetHints(a.keys.InputHelp())
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("wordbook"),
		a.input.Init(),
		a.subscribe(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.Subscribed:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.sub = msg.Subscription
		return a, waitForSnapshot(a.sub)

	case messages.SnapshotReceived:
		a.list.SetSnapshot(msg.Snapshot)
		a.status.SetVersion(msg.Snapshot.Version)
		if st := a.status.State(); st == status.StateConnecting || st == status.StateSaving {
			a.status.SetState(status.StateLive)
		}
		return a, waitForSnapshot(a.sub)

	case messages.SubscriptionClosed:
		a.sub = nil
		a.status.SetState(status.StateClosed)
		return a, nil

	case messages.WordAdded:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.err = nil
		a.status.SetState(status.StateLive)
		a.status.SetMessage(fmt.Sprintf("Added %q", msg.Word))
		return a, nil

	case messages.WordsCleared:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.err = nil
		a.status.SetState(status.StateLive)
		a.status.SetMessage("Cleared all words")
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keys.ForceQuit):
		return a, a.quit()
	case keymap.Matches(keyStr, a.keys.Clear):
		a.status.SetState(status.StateSaving)
		return a, a.clearWords()
	case keymap.Matches(keyStr, a.keys.Toggle):
		return a, a.toggleFocus()
	}

	if a.focus == messages.FocusList {
		if keymap.Matches(keyStr, a.keys.Quit) {
			return a, a.quit()
		}
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd
	}

	if keymap.Matches(keyStr, a.keys.Add) {
		word := a.input.Value()
		a.input.Reset()
		a.status.SetState(status.StateSaving)
		return a, a.addWord(word)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) toggleFocus() tea.Cmd {
	if a.focus == messages.FocusInput {
		a.focus = messages.FocusList
		a.input.Blur()
		a.status.SetHints(a.keys.ListHelp())
		return nil
	}
	a.focus = messages.FocusInput
	a.status.SetHints(a.keys.InputHelp())
	return a.input.Focus()
}

func (a *App) setError(err error) {
	a.err = err
	a.status.SetState(status.StateError)
	a.status.SetMessage(err.Error())
}

func (a *App) quit() tea.Cmd {
	a.Close()
	return tea.Quit
}

// Close ends the subscription. Safe to call more than once.
func (a *App) Close() {
	if a.sub != nil {
		a.sub.Close()
		a.sub = nil
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	return strings.Join([]string{
		a.input.View(),
		"",
		a.list.View(),
		"",
		a.status.View(),
	}, "\n")
}

// SetDimensions sizes the app and its components.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.SetWidth(width)
	// Input box (3 lines), status bar and spacing take 6 lines.
	a.list.SetDimensions(width, max(height-6, 1))
	a.status.SetWidth(width)
}

// Words returns the words currently displayed.
func (a *App) Words() []string {
	words := a.list.Words()
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}

// Focus returns the component receiving key presses.
func (a *App) Focus() messages.Focus {
	return a.focus
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// subscribe opens a conflated subscription: a redraw only needs the newest list.
func (a *App) subscribe() tea.Cmd {
	words := a.ports.Words
	ctx := a.ctx
	return func() tea.Msg {
		sub, err := words.ObserveAlphabetized(ctx, driving.WithConflation())
		return messages.Subscribed{Subscription: sub, Err: err}
	}
}

// waitForSnapshot blocks for the next snapshot on sub.
func waitForSnapshot(sub driving.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-sub.Updates()
		if !ok {
			return messages.SubscriptionClosed{}
		}
		return messages.SnapshotReceived{Snapshot: snap}
	}
}

func (a *App) addWord(word string) tea.Cmd {
	words := a.ports.Words
	ctx := a.ctx
	return func() tea.Msg {
		return messages.WordAdded{Word: word, Err: words.Insert(ctx, word)}
	}
}

func (a *App) clearWords() tea.Cmd {
	words := a.ports.Words
	ctx := a.ctx
	return func() tea.Msg {
		return messages.WordsCleared{Err: words.DeleteAll(ctx)}
	}
}
