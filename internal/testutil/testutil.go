// Package testutil provides shared test helpers for building PDF fixtures.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// PageHeight is the MediaBox height of every fixture page (US Letter).
const PageHeight = 792

// PDF builds a minimal, well-formed PDF with one page per width.
// Pages carry no content stream; each MediaBox is widths[i] x PageHeight,
// so tests can tell pages apart after a merge by their widths.
func PDF(widths ...int) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, len(widths)+2)
	writeObj := func(num int, body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	kids := make([]string, len(widths))
	for i := range widths {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(widths)))
	for i, w := range widths {
		writeObj(i+3, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << >> >>", w, PageHeight))
	}

	size := len(offsets) + 1
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xref)

	return buf.Bytes()
}

// Pages builds a PDF with n pages whose widths are base, base+1, ...
func Pages(n, base int) []byte {
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base + i
	}
	return PDF(widths...)
}

// NotPDF is data that no PDF reader accepts.
var NotPDF = []byte("this is plain text, not a PDF document\n")

// WriteFile writes data under a fresh temp directory and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
