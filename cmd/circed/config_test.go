package main

import "testing"

// TestConfigApply verifies key=value parsing, comments, tilde expansion, and
// the wires setting
func TestConfigApply(t *testing.T) {
	c := defaultConfig()
	c.apply("# comment\n\nwires = 5\nsavedir = ~/circuits\nstartmenu=false\nconfirm = true\nnot-a-pair\nunknown = 1\n", "/home/u")

	if c.DefaultWires != 5 {
		t.Errorf("DefaultWires = %d, want 5", c.DefaultWires)
	}
	if c.SaveDirectory != "/home/u/circuits" {
		t.Errorf("SaveDirectory = %q, want /home/u/circuits", c.SaveDirectory)
	}
	if c.StartMenu {
		t.Error("startmenu=false was not applied")
	}
	if !c.Confirmations {
		t.Error("confirm=true was not applied")
	}
}

// TestConfigWiresBounds verifies out-of-range wire counts keep the default
func TestConfigWiresBounds(t *testing.T) {
	for _, v := range []string{"0", "10", "-3", "x"} {
		c := defaultConfig()
		c.apply("wires="+v, "/home/u")
		if c.DefaultWires != defaultWires {
			t.Errorf("wires=%s changed DefaultWires to %d", v, c.DefaultWires)
		}
	}
}
