package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#606060", Dark: "#a0a0a0"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	localSpeakerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	agentSpeakerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	controlStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

	controlActiveStyle = controlStyle.
				Foreground(lipgloss.Color("42"))

	controlMutedStyle = controlStyle.
				Foreground(lipgloss.Color("208"))

	controlDisabledStyle = controlStyle.
				Foreground(lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#505050"})

	transcriptBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.AdaptiveColor{Light: "#c0c0c0", Dark: "#404040"}).
				Padding(0, 1)
)
