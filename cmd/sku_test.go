package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSkuEncode(t *testing.T) {
	out, err := execute(t, "sku", "encode", "--model", "1", "--width", "160", "--fabric", "VelutaLux", "--color", "7")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if strings.TrimSpace(out) != "PREFIX.001-16.VelutaLux.07" {
		t.Fatalf("unexpected code %q", out)
	}
}

func TestSkuEncode_CustomPrefix(t *testing.T) {
	out, err := execute(t, "sku", "--prefix", "KZ", "encode", "--model", "12", "--width", "90", "--fabric", "A1", "--color", "3")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if strings.TrimSpace(out) != "KZ.012-90.A1.03" {
		t.Fatalf("unexpected code %q", out)
	}
}

func TestSkuEncode_Rejects(t *testing.T) {
	if _, err := execute(t, "sku", "encode", "--model", "1", "--fabric", "A", "--color", "2"); err == nil {
		t.Fatalf("expected error for missing width")
	}
	if _, err := execute(t, "sku", "encode", "--model", "1234", "--width", "160", "--fabric", "A", "--color", "2"); err == nil {
		t.Fatalf("expected error for a four digit model")
	}
}

func TestSkuValidate(t *testing.T) {
	out, err := execute(t, "sku", "validate", "PREFIX.001-16.A.02", "OLD-1")
	if err == nil {
		t.Fatalf("expected error when a code is invalid")
	}
	if !strings.Contains(out, "PREFIX.001-16.A.02\tok") || !strings.Contains(out, "OLD-1\tinvalid") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := execute(t, "sku", "validate", "PREFIX.001-16.A.02"); err != nil {
		t.Fatalf("valid code rejected: %v", err)
	}
}

func TestSkuParse(t *testing.T) {
	out, err := execute(t, "sku", "parse", "PREFIX.001-16.VelutaLux.07")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, want := range []string{"001", "size_number: 16", "model: VelutaLux", "color_number: 7"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}

	if _, err := execute(t, "sku", "parse", "PREFIX.1-16.A.02"); err == nil {
		t.Fatalf("expected error for a malformed code")
	}
}
