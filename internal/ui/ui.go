// Package ui provides the terminal styling helpers used by the CLI.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	emotionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)
)

// RenderPass styles success markers.
func RenderPass(s string) string { return passStyle.Render(s) }

// RenderWarn styles warning markers.
func RenderWarn(s string) string { return warnStyle.Render(s) }

// RenderErr styles error markers.
func RenderErr(s string) string { return errStyle.Render(s) }

// RenderAccent styles headings and progress markers.
func RenderAccent(s string) string { return accentStyle.Render(s) }

// RenderMuted styles secondary detail like ids and timestamps.
func RenderMuted(s string) string { return mutedStyle.Render(s) }

// RenderEmotion styles emotion labels in entry listings.
func RenderEmotion(s string) string { return emotionStyle.Render(s) }
