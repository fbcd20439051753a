// Package testutils builds Bubble Tea v2 key messages for component tests.
package testutils

import (
	tea "charm.land/bubbletea/v2"
)

// NewKeyPressMsg creates a KeyPressMsg from a key code (for special keys)
func NewKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// NewTextKeyPressMsg creates a KeyPressMsg for text input
func NewTextKeyPressMsg(text string) tea.KeyPressMsg {
	if len(text) == 0 {
		return tea.KeyPressMsg(tea.Key{})
	}
	r := []rune(text)[0]
	return tea.KeyPressMsg(tea.Key{
		Code: r,
		Text: text,
	})
}

// NewCtrlKeyPressMsg creates Ctrl+char.
func NewCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

// TypeText returns one key press per rune of text.
func TypeText(text string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, NewTextKeyPressMsg(string(r)))
	}
	return msgs
}

var (
	TestKeyUp         = NewKeyPressMsg(tea.KeyUp)
	TestKeyDown       = NewKeyPressMsg(tea.KeyDown)
	TestKeyEnter      = NewKeyPressMsg(tea.KeyEnter)
	TestKeyShiftEnter = tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter, Mod: tea.ModShift})
	TestKeyTab        = NewKeyPressMsg(tea.KeyTab)
	TestKeyEsc        = NewKeyPressMsg(tea.KeyEscape)
	TestKeyBackspace  = NewKeyPressMsg(tea.KeyBackspace)
	TestKeyPgUp       = NewKeyPressMsg(tea.KeyPgUp)
	TestKeyPgDown     = NewKeyPressMsg(tea.KeyPgDown)
)

var (
	TestKeyCtrlC = NewCtrlKeyPressMsg('c')
	TestKeyCtrlD = NewCtrlKeyPressMsg('d')
	TestKeyCtrlL = NewCtrlKeyPressMsg('l')
	TestKeyCtrlY = NewCtrlKeyPressMsg('y')
)
