package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Outputs) != 0 {
		t.Fatalf("expected no outputs, got %d", len(f.Outputs))
	}
}

func TestLoadParsesOutputRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `outputs:
  - connector: DP-1
    x: 0
    y: 0
    scale: 2
    workspaces: ["1", "2"]
  - connector: HDMI-A-1
    x: 1920
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Outputs) != 2 {
		t.Fatalf("expected 2 output rules, got %d", len(f.Outputs))
	}

	rule, ok := f.RuleFor("DP-1")
	if !ok {
		t.Fatal("expected a rule for DP-1")
	}
	if rule.Scale != 2 || len(rule.Workspaces) != 2 {
		t.Fatalf("unexpected rule: %+v", rule)
	}

	if _, ok := f.RuleFor("DP-2"); ok {
		t.Fatal("did not expect a rule for DP-2")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("outputs: [not a list item"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
