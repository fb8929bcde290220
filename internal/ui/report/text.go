// Package report renders analysis reports as terminal text or JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/ui/output"
	"go.trai.ch/mesha/internal/ui/style"
)

// maxIndices bounds the element indices listed per feature line.
const maxIndices = 8

// Text writes reports for people.
type Text struct {
	w io.Writer
	r *lipgloss.Renderer
}

// NewText creates a Text writer. The color profile follows the shared output rules.
func NewText(w io.Writer) *Text {
	return NewTextWithProfile(w, output.Profile(false))
}

// NewTextWithProfile creates a Text writer with a fixed color profile.
func NewTextWithProfile(w io.Writer, profile termenv.Profile) *Text {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return &Text{w: w, r: r}
}

func (t *Text) style(s lipgloss.Style) lipgloss.Style {
	return s.Renderer(t.r)
}

// Report writes one analysis round.
func (t *Text) Report(rep *domain.Report) error {
	var b strings.Builder

	title := fmt.Sprintf("Round %d", rep.Round)
	summary := fmt.Sprintf("%d object(s)", len(rep.Objects))
	if rep.Duration > 0 {
		summary += " in " + rep.Duration.String()
	}
	b.WriteString(t.style(style.Title).Render(title) + " " + t.style(style.Muted).Render(summary) + "\n")

	for i := range rep.Objects {
		b.WriteString("\n")
		t.object(&b, &rep.Objects[i])
	}

	b.WriteString("\n" + t.style(style.Muted).Render(statsLine(rep.Stats)) + "\n")
	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *Text) object(b *strings.Builder, obj *domain.ObjectReport) {
	b.WriteString(t.style(style.Header).Render(obj.Name) + " " + t.style(style.Muted).Render(obj.Key.Short()) + "\n")
	if len(obj.Results) == 0 {
		b.WriteString("  " + t.style(style.Muted).Render("no features") + "\n")
		return
	}

	for _, r := range obj.Results {
		info, _ := r.Feature.Info()
		icon := t.style(lipgloss.NewStyle().Foreground(style.Swatch(r.Color))).Render(style.KindIcon(r.Kind))
		name := fmt.Sprintf("%-22s", info.Name)
		count := fmt.Sprintf("%6d", r.Len())

		line := "  " + icon + " " + name + " "
		if r.Len() == 0 {
			line += t.style(style.Muted).Render(count)
		} else {
			line += t.style(style.Warn).Render(count) + "  " + t.style(style.Muted).Render(indexPreview(r.Indices))
		}
		b.WriteString(line + "\n")
	}
}

func indexPreview(indices []int) string {
	n := min(len(indices), maxIndices)
	parts := make([]string, n, n+1)
	for i := range n {
		parts[i] = fmt.Sprint(indices[i])
	}
	if len(indices) > maxIndices {
		parts = append(parts, "…")
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func statsLine(s domain.CacheStats) string {
	return fmt.Sprintf("cache: %d hit(s), %d miss(es), %d stale, %d revived, %d eviction(s), %d object(s) tracked, %.0f%% hit ratio",
		s.Hits, s.Misses, s.Stale, s.Revived, s.Evictions, s.Objects, 100*s.HitRatio())
}

// Features writes the feature registry with the enable state and color of cfg.
func (t *Text) Features(infos []domain.FeatureInfo, cfg *domain.AnalysisConfig) error {
	var b strings.Builder
	b.WriteString(t.style(style.Title).Render("Features") + "\n\n")
	for _, info := range infos {
		fc := cfg.Feature(info.ID)
		state := t.style(style.Good).Render(style.Check)
		if !fc.Enabled {
			state = t.style(style.Muted).Render(style.Circle)
		}
		icon := t.style(lipgloss.NewStyle().Foreground(style.Swatch(fc.Color))).Render(style.KindIcon(info.Kind))
		b.WriteString(fmt.Sprintf("  %s %s %-22s %-7s %-7s %s\n",
			state, icon, info.Name, info.Kind, info.Primitive, t.style(style.Muted).Render(info.Label)))
	}
	_, err := io.WriteString(t.w, b.String())
	return err
}
