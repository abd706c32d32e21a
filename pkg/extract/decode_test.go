package extract

import "testing"

func TestDecodeTextValid(t *testing.T) {
	got, err := DecodeText([]byte("<DESIGN>ok</DESIGN>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<DESIGN>ok</DESIGN>" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeTextDropsInvalidBytes(t *testing.T) {
	in := append([]byte("<A"), 0xFF, '>')
	got, err := DecodeText(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<A>" {
		t.Errorf("got %q, want %q", got, "<A>")
	}
}

func TestDecodeTextMostlyBinaryFails(t *testing.T) {
	in := make([]byte, 100)
	for i := range in {
		in[i] = 0xFE
	}
	if _, err := DecodeText(in); err == nil {
		t.Error("expected error for mostly-binary input")
	}
}

func TestDecodeTextEmpty(t *testing.T) {
	got, err := DecodeText(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
