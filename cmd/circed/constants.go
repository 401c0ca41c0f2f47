package main

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeArmed
	ModePalette
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpSaveTXT
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmNewCircuit
	ConfirmOverwriteFile
)

const defaultWires = 3
