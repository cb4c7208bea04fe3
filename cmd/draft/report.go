package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chazu/draft/pkg/drawing"
	"github.com/chazu/draft/pkg/geom"
)

// layerPalette assigns distinct colors to layers in order of first use.
var layerPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

var (
	dimFg     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(dimFg)
	headStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F39C12"))
)

// layerStyle returns the color style for the i-th layer.
func layerStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(layerPalette[i%len(layerPalette)]))
}

// Render formats a report as a bordered block for the terminal.
func Render(r Report) string {
	sections := []string{titleStyle.Render(r.Source)}

	if r.Drawing != nil {
		sections = append(sections,
			renderEntities(r.Drawing),
			dimStyle.Render(fmt.Sprintf("extents %s  size %.4g x %.4g  %d entities  %d layers  %d vertices",
				formatBox(r.Extents), r.Extents.Width(), r.Extents.Height(),
				r.Drawing.Len(), len(r.Drawing.Layers), r.Vertices())),
		)
	}
	if len(r.Skipped) > 0 {
		sections = append(sections, dimStyle.Render("skipped: "+strings.Join(r.Skipped, ", ")))
	}
	for _, f := range r.Errors {
		sections = append(sections, errStyle.Render("error: "+f.String()))
	}
	for _, f := range r.Warnings {
		sections = append(sections, warnStyle.Render("warning: "+f.String()))
	}
	if r.Picked != nil {
		sections = append(sections, renderPicks(r))
	}
	if r.RayHits != nil {
		sections = append(sections, renderRayHits(r))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderEntities(d *drawing.Drawing) string {
	if d.Len() == 0 {
		return dimStyle.Render("(empty drawing)")
	}
	layerIdx := make(map[string]int, len(d.Layers))
	for i, l := range d.Layers {
		layerIdx[l] = i
	}

	rows := []string{headStyle.Render(fmt.Sprintf("%-8s  %-14s  %-8s  %-10s  %s", "id", "name", "kind", "layer", "bounds"))}
	for _, e := range d.Entities {
		kind := "-"
		if e.Shape != nil {
			kind = e.Shape.Kind().String()
		}
		row := fmt.Sprintf("%-8s  %-14s  %-8s  %-10s  %s",
			e.ID.Short(), truncate(e.Name, 14), kind, truncate(e.Layer, 10), formatBox(e.Bounds()))
		rows = append(rows, layerStyle(layerIdx[e.Layer]).Render(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderPicks(r Report) string {
	if len(r.Picked) == 0 {
		return dimStyle.Render("pick: nothing within tolerance")
	}
	lines := make([]string, 0, len(r.Picked)+1)
	lines = append(lines, headStyle.Render("pick"))
	for _, h := range r.Picked {
		lines = append(lines, fmt.Sprintf("%-14s  d=%.4g", entityName(h.Entity), h.Distance))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRayHits(r Report) string {
	if len(r.RayHits) == 0 {
		return dimStyle.Render("ray: no crossings")
	}
	lines := make([]string, 0, len(r.RayHits)+1)
	lines = append(lines, headStyle.Render("ray"))
	for _, h := range r.RayHits {
		lines = append(lines, fmt.Sprintf("%-14s  edge %-3d  t=%.4g  at (%.4g, %.4g)",
			entityName(h.Entity), h.Edge, h.T, h.Point.X, h.Point.Y))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func entityName(e *drawing.Entity) string {
	if e.Name != "" {
		return truncate(e.Name, 14)
	}
	return e.ID.Short()
}

func formatBox(bb geom.BoundingBox) string {
	if bb.IsNull() {
		return "(none)"
	}
	return fmt.Sprintf("[%.4g %.4g %.4g %.4g]", bb.L, bb.T, bb.R, bb.B)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
