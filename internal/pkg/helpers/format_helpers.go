package helpers

import (
	"fmt"
	"path"
	"strings"
)

const mebibyte = 1024 * 1024

// FormatFileSize renders a byte count as KB below 1 MiB and MB above
func FormatFileSize(bytes int64) string {
	if bytes < mebibyte {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/mebibyte)
}

// DisplayName strips the last extension from a file name
func DisplayName(fileName string) string {
	ext := path.Ext(fileName)
	if ext == "" || ext == fileName {
		return fileName
	}
	return strings.TrimSuffix(fileName, ext)
}

// FileType returns the upper-case extension of a file name, or "FILE"
func FileType(fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" || "."+ext == fileName {
		return "FILE"
	}
	return strings.ToUpper(ext)
}

// FormatAmount renders a money amount with two decimals and thousands separators
func FormatAmount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + frac
}
