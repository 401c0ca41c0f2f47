package main

import (
	"encoding/json"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"circed"
)

// yankOperation places a gate subtree on the system clipboard as JSON.
func yankOperation(op *circed.Operation) error {
	data, err := json.MarshalIndent(op, "", "  ")
	if err != nil {
		return err
	}
	return clipboard.WriteAll(string(data))
}

// pasteOperation reads the clipboard and decodes it back into a gate
// template. Returns nil when the clipboard does not hold one.
func pasteOperation() *circed.Operation {
	text, err := readClipboardText()
	if err != nil {
		return nil
	}
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") {
		return nil
	}
	var op circed.Operation
	if err := json.Unmarshal([]byte(text), &op); err != nil {
		return nil
	}
	if op.Gate == "" {
		return nil
	}
	return &op
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
		if output, err := exec.Command("pbpaste").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}
