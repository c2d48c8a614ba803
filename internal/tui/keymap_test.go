package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"NextPane", km.NextPane},
		{"PrevPane", km.PrevPane},
		{"Up", km.Up},
		{"Down", km.Down},
		{"PageUp", km.PageUp},
		{"PageDown", km.PageDown},
		{"Export", km.Export},
		{"Help", km.Help},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			keys := b.binding.Keys()
			if len(keys) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
		})
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	hasQ := false
	hasCtrlC := false
	for _, k := range keys {
		switch k {
		case "q":
			hasQ = true
		case "ctrl+c":
			hasCtrlC = true
		}
	}

	if !hasQ {
		t.Error("expected Quit binding to include 'q'")
	}
	if !hasCtrlC {
		t.Error("expected Quit binding to include 'ctrl+c'")
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	if len(km.ShortHelp()) == 0 {
		t.Error("expected short help to list bindings")
	}
	if len(km.FullHelp()) == 0 {
		t.Error("expected full help to list binding groups")
	}
}
