package main

import (
	"log"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"circed"
)

func main() {
	config := loadConfig()
	m := initialModel(config)

	if len(os.Args) > 1 {
		circ, err := circed.LoadCircuit(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
		m.attachCircuit(circ, os.Args[1])
		m.mode = ModeNormal
	} else if !config.StartMenu {
		m.mode = ModeNormal
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// redrawSignal is how the session's redraw callback reaches the bubbletea
// model: the model value is copied every Update, so the callback flips a flag
// behind a stable pointer and the update loop picks it up after each gesture.
type redrawSignal struct {
	pending bool
}

type model struct {
	width  int
	height int

	circ    *circed.Circuit
	session *circed.Session
	signal  *redrawSignal

	cursorCol  int
	cursorWire int
	focus      circed.Path // composite being edited; "" is the top level
	copyArm    bool

	mode          Mode
	help          bool
	fileOp        FileOperation
	confirmAction ConfirmAction
	fromStartup   bool

	filename          string
	dirty             bool
	fileList          []string
	selectedFileIndex int
	inputText         string
	pendingSavePath   string

	errorMessage   string
	successMessage string

	config *Config
}

func initialModel(config *Config) model {
	m := model{
		signal: &redrawSignal{},
		mode:   ModeStartup,
		config: config,
	}
	m.attachCircuit(circed.NewCircuit(config.DefaultWires), "")
	return m
}

// attachCircuit binds the editor to a circuit, tearing down the previous
// session and starting a fresh one.
func (m *model) attachCircuit(circ *circed.Circuit, filename string) {
	if m.session != nil {
		m.session.Close()
	}
	m.circ = circ
	m.filename = filename
	m.dirty = false
	m.focus = ""
	m.cursorCol = 0
	m.cursorWire = 0
	m.copyArm = false
	sig := m.signal
	m.session = circed.NewSession(circ, m.wireTable(), func() { sig.pending = true })
}

// wireTable derives the session's wire geometry from the rows the renderer
// draws wires on.
func (m *model) wireTable() circed.WireTable {
	table := make(circed.WireTable, m.circ.WireCount())
	for i := range table {
		table[i] = float64(wireRow(i))
	}
	return table
}

// focusOps is the sibling array the cursor currently edits: the top level, or
// the children of the composite entered with 'i'.
func (m model) focusOps() []*circed.Operation {
	if m.focus == "" {
		return m.circ.Operations
	}
	if op := m.circ.FindOperation(m.focus); op.IsComposite() {
		return op.Children
	}
	return m.circ.Operations
}

// slotPath is the path of column col within the focused array. Column
// len(ops) addresses the append slot past the last operation.
func (m model) slotPath(col int) circed.Path {
	return m.focus.Child(col)
}

func parentOf(p circed.Path) circed.Path {
	indices := p.Indices()
	if len(indices) == 0 {
		return ""
	}
	return circed.EncodePath(indices[:len(indices)-1])
}

func (m *model) clampCursor() {
	if maxCol := len(m.focusOps()); m.cursorCol > maxCol {
		m.cursorCol = maxCol
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if maxWire := m.circ.WireCount() - 1; m.cursorWire > maxWire {
		m.cursorWire = maxWire
	}
	if m.cursorWire < 0 {
		m.cursorWire = 0
	}
}

// ensureFocus drops back to the top level when the focused path no longer
// resolves to a composite; paths are positional and any gesture can strand
// the focus.
func (m *model) ensureFocus() {
	if m.focus == "" {
		return
	}
	if op := m.circ.FindOperation(m.focus); !op.IsComposite() {
		m.focus = ""
	}
}

// afterGesture runs once per resolved gesture: pick up the redraw signal,
// refresh wire geometry, and re-clamp everything that may have gone stale.
func (m *model) afterGesture() {
	m.mode = ModeNormal
	m.copyArm = false
	if m.signal.pending {
		m.signal.pending = false
		m.dirty = true
		m.session.SetWireTable(m.wireTable())
	}
	m.ensureFocus()
	m.clampCursor()
}

func (m *model) grabUnderCursor(copyArm bool) {
	if m.cursorCol >= len(m.focusOps()) {
		m.errorMessage = "no gate under cursor"
		return
	}
	m.session.GrabOperation(m.slotPath(m.cursorCol), float64(wireRow(m.cursorWire)))
	if m.session.Armed() {
		m.mode = ModeArmed
		m.copyArm = copyArm
	}
}

func (m *model) dropAtCursor() {
	m.session.Drop(m.slotPath(m.cursorCol), float64(wireRow(m.cursorWire)), m.copyArm)
	m.afterGesture()
}

func (m *model) deleteGesture() {
	if !m.session.Armed() {
		m.grabUnderCursor(false)
		if !m.session.Armed() {
			return
		}
	}
	m.session.DeletePending()
	m.afterGesture()
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			m.help = false
			return m, nil
		}
		switch m.mode {
		case ModeStartup:
			return m.updateStartup(msg)
		case ModeNormal, ModeArmed:
			return m.updateEdit(msg)
		case ModePalette:
			return m.updatePalette(msg)
		case ModeFileInput:
			return m.updateFileInput(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m model) updateStartup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "n":
		m.attachCircuit(circed.NewCircuit(m.config.DefaultWires), "")
		m.mode = ModeNormal
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.attachCircuit(circed.NewCircuit(int(key[0]-'0')), "")
		m.mode = ModeNormal
	case "o":
		m.mode = ModeFileInput
		m.fileOp = FileOpOpen
		m.fromStartup = true
		m.errorMessage = ""
		m.scanCircuitFiles()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "ctrl+c", "q":
		if m.dirty && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit

	case "esc":
		if m.session.Armed() {
			m.session.Cancel()
			m.mode = ModeNormal
			m.copyArm = false
		} else if m.focus != "" {
			// Surface from the group, cursor back on its column.
			if last, ok := m.focus.LastIndex(); ok {
				m.cursorCol = last
			}
			m.focus = parentOf(m.focus)
			m.clampCursor()
		}

	case "h", "left":
		m.cursorCol--
		m.clampCursor()
	case "l", "right":
		m.cursorCol++
		m.clampCursor()
	case "k", "up":
		m.cursorWire--
		m.clampCursor()
	case "j", "down":
		m.cursorWire++
		m.clampCursor()

	case "g", " ":
		m.grabUnderCursor(false)
	case "c":
		m.grabUnderCursor(true)
	case "enter":
		if m.session.Armed() {
			m.dropAtCursor()
		}
	case "d", "delete", "backspace":
		m.deleteGesture()
	case "a":
		if !m.session.Armed() {
			m.mode = ModePalette
		}

	case "i":
		ops := m.focusOps()
		if m.cursorCol < len(ops) && ops[m.cursorCol].IsComposite() {
			m.focus = m.slotPath(m.cursorCol)
			m.cursorCol = 0
			m.clampCursor()
		} else {
			m.errorMessage = "not a group"
		}

	case "y":
		ops := m.focusOps()
		if m.cursorCol >= len(ops) {
			m.errorMessage = "no gate under cursor"
		} else if err := yankOperation(ops[m.cursorCol]); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "yanked"
		}
	case "p":
		if tpl := pasteOperation(); tpl != nil {
			m.session.GrabTemplate(tpl)
			m.mode = ModeArmed
			m.copyArm = false
		} else {
			m.errorMessage = "clipboard has no gate"
		}

	case "s":
		m.startSave(FileOpSave)
	case "S":
		m.startSave(FileOpSavePNG)
	case "T":
		m.startSave(FileOpSaveTXT)
	case "o":
		m.mode = ModeFileInput
		m.fileOp = FileOpOpen
		m.fromStartup = false
		m.scanCircuitFiles()
	case "n":
		if m.dirty && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmNewCircuit
		} else {
			m.attachCircuit(circed.NewCircuit(m.config.DefaultWires), "")
			m.mode = ModeNormal
		}

	case "?":
		m.help = true
	}
	return m, nil
}

func (m model) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		m.mode = ModeNormal
		return m, nil
	}
	if tpl := paletteGate(key); tpl != nil {
		m.session.GrabTemplate(tpl)
		m.mode = ModeArmed
		m.copyArm = false
	}
	return m, nil
}

func (m model) updateFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape {
		if m.fromStartup {
			m.mode = ModeStartup
		} else {
			m.mode = ModeNormal
		}
		m.errorMessage = ""
		return m, nil
	}

	if m.fileOp == FileOpOpen {
		switch msg.String() {
		case "j", "down":
			if m.selectedFileIndex < len(m.fileList)-1 {
				m.selectedFileIndex++
			}
		case "k", "up":
			if m.selectedFileIndex > 0 {
				m.selectedFileIndex--
			}
		case "enter":
			m.openSelected()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		m.performSave()
	case tea.KeyBackspace:
		if len(m.inputText) > 0 {
			m.inputText = m.inputText[:len(m.inputText)-1]
		}
	case tea.KeySpace:
		m.inputText += " "
	case tea.KeyRunes:
		m.inputText += string(msg.Runes)
	}
	return m, nil
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmNewCircuit:
			m.attachCircuit(circed.NewCircuit(m.config.DefaultWires), "")
			m.mode = ModeNormal
		case ConfirmOverwriteFile:
			m.writeFile(m.pendingSavePath)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal && m.mode != ModeArmed {
		return m, nil
	}
	col, wire := m.hitTest(msg.X, msg.Y)
	m.cursorCol = col
	m.cursorWire = wire

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if col < len(m.focusOps()) {
			m.session.GrabOperation(m.slotPath(col), float64(wireRow(wire)))
			if m.session.Armed() {
				m.mode = ModeArmed
				m.copyArm = msg.Ctrl
			}
		}
	case msg.Action == tea.MouseActionRelease:
		if m.session.Armed() {
			if msg.Ctrl {
				m.copyArm = true
			}
			m.dropAtCursor()
		}
	}
	return m, nil
}

// hitTest maps a screen cell to the column and wire under it.
func (m model) hitTest(x, y int) (int, int) {
	col := 0
	if x >= labelWidth {
		col = (x - labelWidth) / columnWidth
	}
	if maxCol := len(m.focusOps()); col > maxCol {
		col = maxCol
	}

	wire := (y - topMargin + 1) / 2
	if wire < 0 {
		wire = 0
	}
	if maxWire := m.circ.WireCount() - 1; wire > maxWire {
		wire = maxWire
	}
	return col, wire
}

func (m *model) startSave(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.errorMessage = ""
	name := m.filename
	name = strings.TrimSuffix(name, ".json")
	if name == "" {
		name = "circuit"
	}
	m.inputText = name
}

func (m *model) performSave() {
	name := strings.TrimSpace(m.inputText)
	if name == "" {
		m.errorMessage = "filename required"
		return
	}
	ext := map[FileOperation]string{
		FileOpSave:    ".json",
		FileOpSavePNG: ".png",
		FileOpSaveTXT: ".txt",
	}[m.fileOp]
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	path := m.config.GetSavePath(name)

	if _, err := os.Stat(path); err == nil && m.config.Confirmations {
		m.mode = ModeConfirm
		m.confirmAction = ConfirmOverwriteFile
		m.inputText = name
		m.pendingSavePath = path
		return
	}
	m.writeFile(path)
}

func (m *model) writeFile(path string) {
	var err error
	switch m.fileOp {
	case FileOpSave:
		if err = m.circ.Save(path); err == nil {
			m.filename = path
			m.dirty = false
		}
	case FileOpSavePNG:
		err = exportPNG(m.circ, path)
	case FileOpSaveTXT:
		err = exportTXT(m.circ, path)
	}
	if err != nil {
		m.errorMessage = err.Error()
		m.mode = ModeFileInput
		return
	}
	m.successMessage = "saved " + path
	m.mode = ModeNormal
}

func (m *model) scanCircuitFiles() {
	m.fileList = []string{}

	dir, err := os.Getwd()
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
	} else {
		m.selectedFileIndex = -1
	}
}

func (m *model) openSelected() {
	if m.selectedFileIndex < 0 || m.selectedFileIndex >= len(m.fileList) {
		m.errorMessage = "no file selected"
		return
	}
	name := m.fileList[m.selectedFileIndex]
	circ, err := circed.LoadCircuit(name)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.attachCircuit(circ, name)
	m.mode = ModeNormal
	m.fromStartup = false
}
