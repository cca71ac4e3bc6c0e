package main

import (
	"fmt"

	"github.com/kofi-q/ttfsubset/ttf"
	"github.com/pterm/pterm"
)

func printInfo(font *ttf.Font) {
	data := [][]string{
		{"Property", "Value"},
		{"Family", font.Names.Family},
		{"Subfamily", font.Names.Subfamily},
		{"Full name", font.Names.Full},
		{"PostScript name", font.Names.PostScript},
		{"Units per em", fmt.Sprintf("%d", font.UnitsPerEm)},
		{"Glyphs", fmt.Sprintf("%d", font.GlyphCount)},
		{"Long metrics", fmt.Sprintf("%d", font.MetricCount)},
		{"Mapped characters", fmt.Sprintf("%d", len(font.Runes()))},
		{"Outlines", fmt.Sprintf("%t", font.HasOutlines())},
		{"Loca format", fmt.Sprintf("%d", font.LocaFormat)},
		{"Weight class", fmt.Sprintf("%d", font.WeightClass)},
		{"fsType", fmt.Sprintf("0x%04x", font.FsType)},
		{"Descriptor flags", fmt.Sprintf("0x%05x", font.Flags)},
		{"Ascent", fmt.Sprintf("%.3f", font.Ascent)},
		{"Descent", fmt.Sprintf("%.3f", font.Descent)},
		{"Italic angle", fmt.Sprintf("%.1f", font.ItalicAngle)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printDirectory(dir *ttf.Directory) {
	data := [][]string{
		{"Tag", "Offset", "Length", "Checksum"},
	}
	for _, table := range dir.Tables {
		data = append(data, []string{
			table.Name.String(),
			fmt.Sprintf("%d", table.Ptr),
			fmt.Sprintf("%d", table.Len),
			fmt.Sprintf("0x%08x", table.Checksum),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printStrikes(strikes []ttf.Strike) {
	if len(strikes) == 0 {
		return
	}

	data := [][]string{
		{"ppem", "Glyphs", "Range", "Bit depth"},
	}
	for _, s := range strikes {
		data = append(data, []string{
			fmt.Sprintf("%dx%d", s.PpemX, s.PpemY),
			fmt.Sprintf("%d", s.Len()),
			fmt.Sprintf("%d-%d", s.StartGlyph, s.EndGlyph),
			fmt.Sprintf("%d", s.BitDepth),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printDiagnostics(diags []ttf.Diagnostic) {
	for _, diag := range diags {
		pterm.Warning.Println(diag.String())
	}
}

func printGlyph(glyph *ttf.Glyph) {
	kind := "simple"
	if glyph.Compound() {
		kind = "compound"
	}
	pterm.Printf(
		"glyph %d: %s, %d bytes, bbox (%d,%d)-(%d,%d)\n",
		glyph.Index,
		kind,
		len(glyph.Data),
		glyph.XMin, glyph.YMin, glyph.XMax, glyph.YMax,
	)

	if !glyph.Compound() {
		return
	}

	data := [][]string{
		{"Component", "Glyph", "Flags", "Offset"},
	}
	for i, c := range glyph.Components {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", c.Index),
			fmt.Sprintf("0x%04x", c.Flags),
			fmt.Sprintf("%d", c.Offset),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printMetrics(gid uint16, m ttf.GlyphMetrics) {
	pterm.Printf(
		"glyph %d: advance %.4f, lsb %.4f, box (%.4f,%.4f)-(%.4f,%.4f) em\n",
		gid,
		m.Advance,
		m.LeftBearing,
		m.Left, m.Bottom, m.Right, m.Top,
	)
}
