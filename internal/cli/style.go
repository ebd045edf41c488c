package cli

import "github.com/charmbracelet/lipgloss"

const bannerTitle = "WELCOME TO THE QUIZ GAME"

type styles struct {
	noColor bool
	banner  lipgloss.Style
}

func newStyles(noColor bool) styles {
	banner := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(1, 12)
	if !noColor {
		banner = banner.
			BorderForeground(lipgloss.Color("33")).
			Foreground(lipgloss.Color("230")).
			Bold(true)
	}
	return styles{noColor: noColor, banner: banner}
}

func (s styles) renderBanner() string {
	return s.banner.Render(bannerTitle) + "\n" + s.muted("Test your knowledge now!")
}

func (s styles) correct(text string) string {
	return stylize(text, s.noColor, lipgloss.Color("42"))
}

func (s styles) incorrect(text string) string {
	return stylize(text, s.noColor, lipgloss.Color("196"))
}

func (s styles) muted(text string) string {
	return stylize(text, s.noColor, lipgloss.Color("244"))
}

func (s styles) heading(text string) string {
	return stylize(text, s.noColor, lipgloss.Color("33"))
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
