package picker

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/4thel00z/snipman/internal"
)

// KeyMap holds the rebindable commands, as bubbletea key strings such as
// "esc" or "ctrl+p". Printable keys bound here stop reaching the query.
type KeyMap struct {
	Quit    []string
	Preview []string
	Delete  []string
}

func DefaultKeyMap() KeyMap {
	return KeyMapFromConfig(internal.DefaultConfig().Picker.Keys)
}

func KeyMapFromConfig(cfg internal.KeysConfig) KeyMap {
	return KeyMap{
		Quit:    slices.Clone(cfg.Quit),
		Preview: slices.Clone(cfg.Preview),
		Delete:  slices.Clone(cfg.Delete),
	}
}

// Events translates a key press into picker events for the given mode.
// Pasted text yields one EventChar per rune.
func (k KeyMap) Events(mode Mode, msg tea.KeyMsg) []Event {
	key := msg.String()

	if mode == ModeConfirmingDelete {
		switch key {
		case "y", "Y":
			return []Event{Key(EventConfirm)}
		case "n", "N", "esc":
			return []Event{Key(EventCancel)}
		case "ctrl+c":
			return []Event{Key(EventCancel), Key(EventQuit)}
		}
		return nil
	}

	switch {
	case key == "ctrl+c" || slices.Contains(k.Quit, key):
		return []Event{Key(EventQuit)}
	case slices.Contains(k.Preview, key):
		return []Event{Key(EventTogglePreview)}
	case slices.Contains(k.Delete, key):
		return []Event{Key(EventDelete)}
	}

	switch msg.Type {
	case tea.KeyEnter:
		return []Event{Key(EventEnter)}
	case tea.KeyBackspace:
		return []Event{Key(EventBackspace)}
	case tea.KeyUp:
		return []Event{Key(EventUp)}
	case tea.KeyDown:
		return []Event{Key(EventDown)}
	case tea.KeyPgUp:
		return []Event{Key(EventPageUp)}
	case tea.KeyPgDown:
		return []Event{Key(EventPageDown)}
	case tea.KeySpace:
		return []Event{Char(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		events := make([]Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, Char(r))
		}
		return events
	}
	return nil
}
