package main

import "github.com/charmbracelet/lipgloss"

var (
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	HintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).PaddingLeft(2)
)
