package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"linggen/internal/aptitude"
	"linggen/internal/card"
)

// SectName is printed across the top of every card.
const SectName = "绯月宗"

// RenderCard lays out an identity card: details on the left, the emblem on
// the right, and the lore underneath, framed in the card's border color.
func RenderCard(s card.Sheet, st Styles) string {
	c := s.Card
	row := func(label, value string) string {
		style := st.Value
		if placeholder(value) {
			style = st.Muted
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, st.Label.Render(label), style.Render(value))
	}

	details := lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Render(c.DisplayName()),
		"",
		row("性别", c.DisplayGender()),
		row("入宗", c.EntryDate),
		row("灵根", c.Descriptor),
		row("体质", c.Constitution),
		row("峰脉", c.Peak),
		"",
		st.Serial.Render(s.Serial),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().PaddingRight(3).Render(details),
		RenderEmblem(s.Classification),
	)

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		st.Title.Render(SectName+" · 身份卡"),
		"  ",
		st.Badge.Render(c.Border.Name()),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		"",
		st.Lore.Width(lipgloss.Width(body)).Render(s.Description),
	)

	from, to := c.Border.Colors()
	frame := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderTopForeground(lipgloss.Color(from)).
		BorderLeftForeground(lipgloss.Color(from)).
		BorderBottomForeground(lipgloss.Color(to)).
		BorderRightForeground(lipgloss.Color(to)).
		Padding(1, 2)
	return frame.Render(strings.TrimRight(content, "\n"))
}

// placeholder reports whether v is one of the untested or unset labels.
func placeholder(v string) bool {
	switch v {
	case aptitude.Unmeasured, aptitude.Unassigned, card.NoGenderLabel, "":
		return true
	}
	return false
}
