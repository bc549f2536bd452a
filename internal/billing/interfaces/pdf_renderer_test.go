package interfaces

import (
	"bytes"
	"testing"
)

func TestPDFRendererProducesDocument(t *testing.T) {
	data, err := NewPDFRenderer(fixedFormatter()).Render(sampleNotice())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", data[:8])
	}
}

func TestPDFRendererMissingFont(t *testing.T) {
	r := NewPDFRenderer(fixedFormatter(), WithUTF8Font("/nonexistent/font.ttf"))
	if _, err := r.Render(sampleNotice()); err == nil {
		t.Fatalf("expected font error")
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{705.25, "705.25"},
		{5225, "5225.00"},
		{0.1 + 0.2, "0.30"},
		{1301.9999999999998, "1302.00"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Fatalf("%v: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}
