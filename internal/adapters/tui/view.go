package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/mesha/internal/ui/style"
)

// View renders the UI.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.objectList(),
		m.detailPane(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, panes, "", m.footer())
}

func (m *Model) objectList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("OBJECTS") + "\n\n")

	start := m.ListOffset
	end := min(m.ListOffset+m.ListHeight, len(m.Objects))
	start = min(start, end)

	for i := start; i < end; i++ {
		s.WriteString(m.renderObjectRow(i, m.Objects[i]) + "\n")
	}
	if len(m.Objects) == 0 {
		s.WriteString(objectDeletedStyle.Render("no mesh objects") + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderObjectRow(index int, node *ObjectNode) string {
	st := objectStyle(node)

	cursor := "  "
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		if node.Status == StatusFresh {
			st = selectedStyle
		}
	}

	content := fmt.Sprintf("%s %s (%d)", objectIcon(node), node.Name, node.Flagged())
	return cursor + st.Render(content)
}

func objectIcon(node *ObjectNode) string {
	switch node.Status {
	case StatusChanged:
		return style.Dot
	case StatusDeleted:
		return style.Cross
	default:
		return style.Check
	}
}

func objectStyle(node *ObjectNode) lipgloss.Style {
	switch node.Status {
	case StatusChanged:
		return objectChangedStyle
	case StatusDeleted:
		return objectDeletedStyle
	default:
		return objectFreshStyle
	}
}

func (m *Model) detailPane() string {
	node := m.Selected()
	if node == nil {
		return detailStyle.Render(titleStyle.Render("FEATURES (Waiting...)"))
	}

	mode := " (Manual)"
	if m.FollowMode {
		mode = " (Following)"
	}
	header := titleStyle.Render("FEATURES: " + node.Name + mode)

	var rows strings.Builder
	for _, r := range node.Results {
		info, _ := r.Feature.Info()
		icon := lipgloss.NewStyle().Foreground(style.Swatch(r.Color)).Render(style.KindIcon(r.Kind))
		count := fmt.Sprintf("%6d", r.Len())
		if r.Len() == 0 {
			count = style.Muted.Render(count)
		} else {
			count = style.Warn.Render(count)
		}
		rows.WriteString(fmt.Sprintf("%s %-22s %s\n", icon, info.Label, count))
	}
	if len(node.Results) == 0 {
		rows.WriteString(style.Muted.Render("no features") + "\n")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", rows.String())
	if m.DetailWidth > 0 {
		return detailStyle.Width(m.DetailWidth).Render(content)
	}
	return detailStyle.Render(content)
}

func (m *Model) footer() string {
	if m.Err != nil {
		return failureTitleStyle.Render("ROUND FAILED") + " " + style.Bad.Render(m.Err.Error())
	}
	s := m.Stats
	return style.Muted.Render(fmt.Sprintf("round %d in %s · %d hit(s) · %d miss(es) · %d revived · %d eviction(s) · q quit · j/k move · esc follow",
		m.Round, m.Duration, s.Hits, s.Misses, s.Revived, s.Evictions))
}
