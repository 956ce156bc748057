// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit   key.Binding
	NextType key.Binding
	PrevType key.Binding
	Focus    key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit/select")),
		NextType: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next type")),
		PrevType: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev type")),
		Focus:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "focus")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQ:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.NextType, k.Focus, k.Submit, k.Quit}
}
