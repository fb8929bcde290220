package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/mesha/internal/core/domain"
)

const (
	objectListWidthRatio = 0.3
	detailBorderWidth    = 4
)

// ObjectStatus is the state of an object between rounds.
type ObjectStatus string

const (
	// StatusFresh means the results match the latest round.
	StatusFresh ObjectStatus = "Fresh"
	// StatusChanged means the host reported a change not yet analyzed.
	StatusChanged ObjectStatus = "Changed"
	// StatusDeleted means the host removed the object.
	StatusDeleted ObjectStatus = "Deleted"
)

// ObjectNode is one object in the list pane.
type ObjectNode struct {
	Key     domain.ObjectKey
	Name    string
	Status  ObjectStatus
	Results []domain.FeatureResult
}

// Flagged returns the number of features with at least one element.
func (n *ObjectNode) Flagged() int {
	count := 0
	for _, r := range n.Results {
		if r.Len() > 0 {
			count++
		}
	}
	return count
}

// Model is the watch TUI state.
type Model struct {
	Objects     []*ObjectNode
	ObjectMap   map[domain.ObjectKey]*ObjectNode
	Round       int
	Stats       domain.CacheStats
	Duration    time.Duration
	Err         error
	SelectedIdx int
	ListOffset  int
	ListHeight  int
	ListWidth   int
	DetailWidth int
	FollowMode  bool
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

// Selected returns the highlighted object, or nil when the list is empty.
func (m *Model) Selected() *ObjectNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Objects) {
		return m.Objects[m.SelectedIdx]
	}
	return nil
}

func (m *Model) selectKey(key domain.ObjectKey) bool {
	for i, n := range m.Objects {
		if n.Key == key {
			m.SelectedIdx = i
			m.ensureVisible()
			return true
		}
	}
	return false
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // message dispatch
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k", "up":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.FollowMode = false
				m.ensureVisible()
			}
		case "j", "down":
			if m.SelectedIdx < len(m.Objects)-1 {
				m.SelectedIdx++
				m.FollowMode = false
				m.ensureVisible()
			}
		case "esc":
			m.FollowMode = true
			for i, n := range m.Objects {
				if n.Status == StatusChanged {
					m.SelectedIdx = i
					break
				}
			}
			m.ensureVisible()
		}

	case tea.WindowSizeMsg:
		m.ListWidth = int(float64(msg.Width) * objectListWidthRatio)
		m.DetailWidth = msg.Width - m.ListWidth - detailBorderWidth

		fullHeader := titleStyle.Render("OBJECTS") + "\n\n"
		footerHeight := 2
		m.ListHeight = max(1, msg.Height-lipgloss.Height(fullHeader)-footerHeight)
		m.ensureVisible()

	case MsgChanges:
		for _, ev := range msg.Events {
			node, ok := m.ObjectMap[ev.Object]
			if !ok {
				continue
			}
			if ev.Kind == domain.ChangeDeleted {
				node.Status = StatusDeleted
			} else {
				node.Status = StatusChanged
			}
			if m.FollowMode {
				m.selectKey(ev.Object)
			}
		}

	case MsgReport:
		m.applyReport(&msg.Report)

	case MsgError:
		m.Err = msg.Err
	}

	return m, nil
}

func (m *Model) applyReport(rep *domain.Report) {
	var selected domain.ObjectKey
	if n := m.Selected(); n != nil {
		selected = n.Key
	}

	m.Objects = make([]*ObjectNode, 0, len(rep.Objects))
	m.ObjectMap = make(map[domain.ObjectKey]*ObjectNode, len(rep.Objects))
	for _, obj := range rep.Objects {
		node := &ObjectNode{
			Key:     obj.Key,
			Name:    obj.Name,
			Status:  StatusFresh,
			Results: obj.Results,
		}
		m.Objects = append(m.Objects, node)
		m.ObjectMap[obj.Key] = node
	}

	m.Round = rep.Round
	m.Stats = rep.Stats
	m.Duration = rep.Duration
	m.Err = nil

	if selected.IsZero() || !m.selectKey(selected) {
		m.SelectedIdx = min(m.SelectedIdx, max(0, len(m.Objects)-1))
		m.ensureVisible()
	}
}
