package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cubebrowser/internal/browser"
	"github.com/san-kum/cubebrowser/internal/render"
)

const barWidth = 20

// Frame renders every plot surface of b followed by its sliders.
func Frame(b *browser.Browser) string {
	return lipgloss.JoinVertical(lipgloss.Left, PlotsView(b), "", slidersView(b, -1))
}

// PlotsView joins the distinct axes of b side by side, in plot order.
func PlotsView(b *browser.Browser) string {
	var views []string
	seen := make(map[*render.Axes]bool)
	for _, p := range b.Plots() {
		axes := p.Axes()
		if seen[axes] {
			continue
		}
		seen[axes] = true
		views = append(views, axes.View())
	}
	if len(views) == 0 {
		return Subtle.Render("no plots")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// slidersView lists each slider with its position. focus indexes the sorted
// slider names; a negative focus marks none.
func slidersView(b *browser.Browser, focus int) string {
	names := b.Names()
	if len(names) == 0 {
		return Subtle.Render("no sliders")
	}
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	var s strings.Builder
	for i, name := range names {
		slider, _ := b.Slider(name)
		label := fmt.Sprintf("%-*s", width, name)
		marker := "  "
		if i == focus {
			marker = NeonGlow.Render("▸ ")
			label = NeonGlow.Render(label)
		} else {
			label = MetricLabel.Render(label)
		}
		value := fmt.Sprintf("%d/%d", slider.Value(), slider.Max)
		if point := pointLabel(b, name, slider.Value()); point != "" {
			value += "  " + point
		}
		s.WriteString(marker + label + " " + ProgressBar(slider.Fraction(), barWidth) + " " + MetricValue.Render(value))
		if i < len(names)-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

// pointLabel returns the coordinate value at position v of a slider named by
// a coordinate, or "" for an alias.
func pointLabel(b *browser.Browser, name string, v int) string {
	axis, ok := b.Axis(name)
	if !ok || axis.Coord == nil || v >= len(axis.Coord.Points) {
		return ""
	}
	label := fmt.Sprintf("%g", axis.Coord.Points[v])
	if units := axis.Coord.Units; units != "" && units != "1" {
		label += " " + units
	}
	return label
}

// ProfileChart plots values with asciigraph.
func ProfileChart(values []float64, caption string, width int) string {
	if len(values) == 0 {
		return Subtle.Render("no data")
	}
	if len(values) == 1 {
		values = []float64{values[0], values[0]}
	}
	return asciigraph.Plot(values, asciigraph.Height(4), asciigraph.Width(width), asciigraph.Caption(caption))
}
