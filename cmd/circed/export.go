package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"circed"
)

// exportTXT writes the rendered diagram of the circuit's top level, without
// cursor or selection, to a plain text file.
func exportTXT(c *circed.Circuit, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	grid := renderOps(c.Operations, c.WireCount())
	for _, row := range grid {
		fmt.Fprintln(file, string(row))
	}
	return nil
}

// Pixel metrics for PNG export.
const (
	pngCellW   = 64.0
	pngRowH    = 48.0
	pngMargin  = 32.0
	pngLabelW  = 48.0
	pngBoxW    = 44.0
	pngBoxH    = 28.0
	pngDotR    = 5.0
	pngFontPts = 14.0
)

// exportPNG renders the circuit's top level to a PNG image: horizontal wires,
// boxed gates, filled control dots with connectors.
func exportPNG(c *circed.Circuit, filename string) error {
	wires := c.WireCount()
	if wires == 0 {
		return fmt.Errorf("nothing to export")
	}
	cols := len(c.Operations)

	imageWidth := int(pngMargin*2 + pngLabelW + pngCellW*float64(cols+1))
	imageHeight := int(pngMargin*2 + pngRowH*float64(wires))

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    pngFontPts,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	wireY := func(w int) float64 {
		return pngMargin + pngRowH*(float64(w)+0.5)
	}
	colCX := func(i int) float64 {
		return pngMargin + pngLabelW + pngCellW*(float64(i)+0.5)
	}

	// Wires with their labels.
	dc.SetLineWidth(1.0)
	for w := 0; w < wires; w++ {
		y := wireY(w)
		dc.DrawStringAnchored(fmt.Sprintf("q%d", w), pngMargin, y, 0, 0.35)
		dc.DrawLine(pngMargin+pngLabelW-8, y, float64(imageWidth)-pngMargin, y)
		dc.Stroke()
	}

	for i, op := range c.Operations {
		drawOperationPNG(dc, op, colCX(i), wireY)
	}

	return dc.SavePNG(filename)
}

func drawOperationPNG(dc *gg.Context, op *circed.Operation, cx float64, wireY func(int) float64) {
	lo, hi := wireSpan(op)
	if lo < 0 {
		return
	}

	// Connector spanning everything the operation touches.
	if hi > lo {
		dc.SetLineWidth(1.5)
		dc.DrawLine(cx, wireY(lo), cx, wireY(hi))
		dc.Stroke()
	}

	for _, ctrl := range op.Controls {
		dc.DrawCircle(cx, wireY(ctrl.Wire), pngDotR)
		dc.Fill()
	}

	label := op.Gate
	if op.Gate == circed.GateMeasure {
		label = "M"
	}
	if op.Args != "" {
		label += op.Args
	}
	drawnBox := false
	for _, tgt := range op.Targets {
		y := wireY(tgt.Wire)
		if drawnBox {
			dc.DrawCircle(cx, y, pngDotR+2)
			dc.Stroke()
			continue
		}
		dc.SetColor(color.White)
		dc.DrawRectangle(cx-pngBoxW/2, y-pngBoxH/2, pngBoxW, pngBoxH)
		dc.Fill()
		dc.SetColor(color.Black)
		dc.SetLineWidth(1.5)
		dc.DrawRectangle(cx-pngBoxW/2, y-pngBoxH/2, pngBoxW, pngBoxH)
		dc.Stroke()
		dc.DrawStringAnchored(label, cx, y, 0.5, 0.35)
		drawnBox = true
	}
}
