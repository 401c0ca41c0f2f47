package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"circed"
)

const (
	labelWidth  = 5 // room for "q0 ─"
	columnWidth = 8
	topMargin   = 1
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	armedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// wireRow is the screen row a wire is drawn on. One blank row between wires
// leaves space for control connectors.
func wireRow(wire int) int {
	return topMargin + wire*2
}

// colX is the left edge of a top-level column. Column len(ops) is the append
// slot past the last operation.
func colX(col int) int {
	return labelWidth + col*columnWidth
}

func newGrid(width, height int) [][]rune {
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	return grid
}

func set(grid [][]rune, x, y int, r rune) {
	if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
		grid[y][x] = r
	}
}

func putString(grid [][]rune, x, y int, s string) {
	for i, r := range []rune(s) {
		set(grid, x+i, y, r)
	}
}

// gateLabel is the boxed text drawn for an operation.
func gateLabel(op *circed.Operation) string {
	switch {
	case op.Gate == circed.GateMeasure:
		return "[M]"
	case op.IsComposite():
		return fmt.Sprintf("[%s:%d]", op.Gate, len(op.Children))
	case op.Args != "":
		return "[" + op.Gate + op.Args + "]"
	default:
		return "[" + op.Gate + "]"
	}
}

// wireSpan returns the lowest and highest wire an operation touches, or
// (-1, -1) for an operation with no registers.
func wireSpan(op *circed.Operation) (int, int) {
	lo, hi := -1, -1
	for _, regs := range [][]circed.Register{op.Targets, op.Controls} {
		for _, r := range regs {
			if lo < 0 || r.Wire < lo {
				lo = r.Wire
			}
			if r.Wire > hi {
				hi = r.Wire
			}
		}
	}
	return lo, hi
}

func drawOperation(grid [][]rune, op *circed.Operation, col int) {
	cx := colX(col) + columnWidth/2
	lo, hi := wireSpan(op)
	if lo < 0 {
		putString(grid, cx-1, topMargin, gateLabel(op))
		return
	}
	for row := wireRow(lo); row <= wireRow(hi); row++ {
		set(grid, cx, row, '│')
	}
	for _, ctrl := range op.Controls {
		set(grid, cx, wireRow(ctrl.Wire), '●')
	}
	label := []rune(gateLabel(op))
	if len(label) > columnWidth {
		label = append(label[:columnWidth-2], '…', ']')
	}
	drawnLabel := false
	for _, tgt := range op.Targets {
		if !drawnLabel {
			putString(grid, cx-len(label)/2, wireRow(tgt.Wire), string(label))
			drawnLabel = true
		} else {
			set(grid, cx, wireRow(tgt.Wire), '◎')
		}
	}
}

// renderOps draws a sibling array of operations onto a fresh grid, one column
// per operation plus a trailing append slot.
func renderOps(ops []*circed.Operation, wireCount int) [][]rune {
	width := labelWidth + columnWidth*(len(ops)+1)
	height := wireRow(wireCount-1) + 2
	if wireCount == 0 {
		height = topMargin + 2
	}
	grid := newGrid(width, height)

	for w := 0; w < wireCount; w++ {
		row := wireRow(w)
		putString(grid, 0, row, fmt.Sprintf("q%-2d", w))
		for x := labelWidth - 2; x < width; x++ {
			set(grid, x, row, '─')
		}
	}
	for i, op := range ops {
		drawOperation(grid, op, i)
	}
	return grid
}

// diagramLines renders the focused sibling array as printable lines, with the
// cursor cell reversed when withCursor is set.
func (m model) diagramLines(withCursor bool) []string {
	ops := m.focusOps()
	grid := renderOps(ops, m.circ.WireCount())

	lines := make([]string, len(grid))
	cy := wireRow(m.cursorWire)
	cx := colX(m.cursorCol) + columnWidth/2
	for y, row := range grid {
		if withCursor && y == cy && cx < len(row) {
			lines[y] = string(row[:cx]) + cursorStyle.Render(string(row[cx])) + string(row[cx+1:])
		} else {
			lines[y] = string(row)
		}
	}
	return lines
}

func (m model) renderStatus() string {
	var left string
	switch {
	case m.mode == ModePalette:
		left = "palette: h x y z s t c(ontrolled-x) m(easure) g(roup), esc cancels"
	case m.session != nil && m.session.Armed():
		verb := "move"
		if m.copyArm {
			verb = "copy"
		}
		left = armedStyle.Render(fmt.Sprintf("%s armed", verb)) + " — enter/click drops, d deletes, esc cancels"
	default:
		name := m.filename
		if name == "" {
			name = "[unsaved]"
		}
		if m.dirty {
			name += " *"
		}
		left = name
		if m.focus != "" {
			left += "  (inside " + string(m.focus) + ", esc to surface)"
		}
	}

	switch {
	case m.errorMessage != "":
		left += "  " + errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		left += "  " + okStyle.Render(m.successMessage)
	}
	return statusStyle.Render(left) + dimStyle.Render("  ? help")
}

func (m model) View() string {
	switch m.mode {
	case ModeStartup:
		return m.startupView()
	case ModeFileInput:
		return m.fileInputView()
	case ModeConfirm:
		return m.confirmView()
	}
	if m.help {
		return helpView()
	}
	return strings.Join(m.diagramLines(true), "\n") + "\n" + m.renderStatus()
}

func (m model) startupView() string {
	return strings.Join([]string{
		"",
		"  circed — circuit editor",
		"",
		"  'n'   new circuit",
		"  '1'-'9' new circuit with that many wires",
		"  'o'   open a saved circuit",
		"  'q'   quit",
		"",
	}, "\n")
}

func (m model) fileInputView() string {
	var b strings.Builder
	switch m.fileOp {
	case FileOpOpen:
		b.WriteString("Open circuit:\n\n")
		if len(m.fileList) == 0 {
			b.WriteString("  no .json files here\n")
		}
		for i, f := range m.fileList {
			if i == m.selectedFileIndex {
				b.WriteString("  > " + cursorStyle.Render(f) + "\n")
			} else {
				b.WriteString("    " + f + "\n")
			}
		}
		b.WriteString("\nj/k select, enter opens, esc cancels")
	default:
		prompt := map[FileOperation]string{
			FileOpSave:    "Save as",
			FileOpSavePNG: "Export PNG as",
			FileOpSaveTXT: "Export text as",
		}[m.fileOp]
		b.WriteString(fmt.Sprintf("%s: %s▏\n\nenter confirms, esc cancels", prompt, m.inputText))
	}
	if m.errorMessage != "" {
		b.WriteString("\n" + errorStyle.Render(m.errorMessage))
	}
	return b.String()
}

func (m model) confirmView() string {
	question := map[ConfirmAction]string{
		ConfirmQuit:          "Quit without saving?",
		ConfirmNewCircuit:    "Discard the current circuit?",
		ConfirmOverwriteFile: fmt.Sprintf("Overwrite %s?", m.inputText),
	}[m.confirmAction]
	return question + " (y/n)"
}

func helpView() string {
	return strings.Join([]string{
		"circed help",
		"===========",
		"",
		"Cursor:",
		"  h/l or ←/→       previous/next column (last column is the append slot)",
		"  j/k or ↓/↑       wire below/above",
		"",
		"Gestures:",
		"  g or space       grab the gate under the cursor (move)",
		"  c                grab the gate under the cursor (copy)",
		"  enter            drop the grabbed gate at the cursor",
		"  d                delete (grabbed gate, or gate under cursor)",
		"  a                palette: pick a new gate to place",
		"  esc              cancel the gesture / leave a group",
		"  mouse            press on a gate, release on the target (ctrl = copy)",
		"",
		"Groups:",
		"  i                edit inside the group under the cursor",
		"",
		"Clipboard:",
		"  y                yank gate under cursor as JSON",
		"  p                paste clipboard JSON as a grabbed gate",
		"",
		"Files:",
		"  s                save circuit JSON",
		"  S                export PNG",
		"  T                export text diagram",
		"  o                open a circuit",
		"",
		"  q / ctrl+c       quit",
		"",
		"press any key to close",
	}, "\n")
}
