package helpers

import (
	"testing"
	"time"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.0 KB"},
		{512, "0.5 KB"},
		{1048575, "1024.0 KB"},
		{1048576, "1.0 MB"},
		{5 * 1048576 / 2, "2.5 MB"},
	}
	for _, tt := range tests {
		if got := FormatFileSize(tt.bytes); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestDisplayNameAndType(t *testing.T) {
	tests := []struct {
		file, name, typ string
	}{
		{"offer-letter.pdf", "offer-letter", "PDF"},
		{"scan.final.jpeg", "scan.final", "JPEG"},
		{"README", "README", "FILE"},
		{".env", ".env", "FILE"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.file); got != tt.name {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.file, got, tt.name)
		}
		if got := FileType(tt.file); got != tt.typ {
			t.Errorf("FileType(%q) = %q, want %q", tt.file, got, tt.typ)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := map[float64]string{
		0:       "$0.00",
		250:     "$250.00",
		1000:    "$1,000.00",
		1234567: "$1,234,567.00",
		-42.5:   "-$42.50",
	}
	for in, want := range tests {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(nil); got != "N/A" {
		t.Errorf("FormatDate(nil) = %q", got)
	}
	d := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(&d); got != "Aug 15, 2025" {
		t.Errorf("FormatDate() = %q", got)
	}
	if got := ParseDuration("bogus", time.Hour); got != time.Hour {
		t.Errorf("ParseDuration fallback = %v", got)
	}
}
