package extract

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"testing"
	"unicode/utf16"
)

// buildPDF writes a single page PDF with one Helvetica text line per entry.
// withImage adds an image XObject to the page resources.
func buildPDF(t *testing.T, lines []string, withImage bool) []byte {
	t.Helper()
	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n14 TL\n72 740 Td\n")
	for _, l := range lines {
		if strings.ContainsAny(l, `()\`) {
			t.Fatalf("line %q needs escaping", l)
		}
		fmt.Fprintf(&content, "(%s) Tj\nT*\n", l)
	}
	content.WriteString("ET")

	resources := "/Font << /F1 5 0 R >>"
	if withImage {
		resources += " /XObject << /Im1 6 0 R >>"
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << " + resources + " >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	if withImage {
		objects = append(objects, "<< /Type /XObject /Subtype /Image /Width 1 /Height 1 /ColorSpace /DeviceGray /BitsPerComponent 8 /Length 1 >>\nstream\n\x80\nendstream")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

const (
	cfbSector     = 512
	cfbEndOfChain = 0xFFFFFFFE
	cfbFATSect    = 0xFFFFFFFD
	cfbFree       = 0xFFFFFFFF
)

// buildDOC writes a version 3 compound file whose only stream is a
// WordDocument holding the paragraphs as UTF-16LE separated by CR. The
// stream is padded to the 4096 byte mini stream cutoff so it lives in
// regular sectors.
func buildDOC(t *testing.T, paragraphs []string) []byte {
	t.Helper()
	var stream []byte
	stream = append(stream, 0xec, 0xa5, 0x00, 0x00) // FIB magic, not printable text
	for _, p := range paragraphs {
		for _, u := range utf16.Encode([]rune(p + "\r")) {
			stream = binary.LittleEndian.AppendUint16(stream, u)
		}
	}
	if len(stream) > 4096 {
		t.Fatalf("fixture text too long: %d bytes", len(stream))
	}
	stream = append(stream, make([]byte, 4096-len(stream))...)
	streamSectors := len(stream) / cfbSector

	header := make([]byte, cfbSector)
	copy(header, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	le := binary.LittleEndian
	le.PutUint16(header[24:], 0x003E)
	le.PutUint16(header[26:], 3)
	le.PutUint16(header[28:], 0xFFFE)
	le.PutUint16(header[30:], 9)
	le.PutUint16(header[32:], 6)
	le.PutUint32(header[44:], 1) // FAT sectors
	le.PutUint32(header[48:], 1) // directory starts at sector 1
	le.PutUint32(header[56:], 4096)
	le.PutUint32(header[60:], cfbEndOfChain)
	le.PutUint32(header[68:], cfbEndOfChain)
	le.PutUint32(header[76:], 0) // FAT lives in sector 0
	for off := 80; off < cfbSector; off += 4 {
		le.PutUint32(header[off:], cfbFree)
	}

	fat := make([]byte, cfbSector)
	for i := 0; i < cfbSector/4; i++ {
		le.PutUint32(fat[i*4:], cfbFree)
	}
	le.PutUint32(fat[0:], cfbFATSect)
	le.PutUint32(fat[4:], cfbEndOfChain)
	for i := 0; i < streamSectors; i++ {
		next := uint32(cfbEndOfChain)
		if i < streamSectors-1 {
			next = uint32(i + 3)
		}
		le.PutUint32(fat[(i+2)*4:], next)
	}

	dir := make([]byte, cfbSector)
	entry := func(idx int, name string, objType byte, child, start uint32, size int) {
		e := dir[idx*128 : (idx+1)*128]
		units := utf16.Encode([]rune(name))
		for i, u := range units {
			le.PutUint16(e[i*2:], u)
		}
		if name != "" {
			le.PutUint16(e[64:], uint16((len(units)+1)*2))
		}
		e[66] = objType
		e[67] = 1
		le.PutUint32(e[68:], cfbFree)
		le.PutUint32(e[72:], cfbFree)
		le.PutUint32(e[76:], child)
		le.PutUint32(e[116:], start)
		le.PutUint32(e[120:], uint32(size))
	}
	entry(0, "Root Entry", 5, 1, cfbEndOfChain, 0)
	entry(1, "WordDocument", 2, cfbFree, 2, len(stream))
	entry(2, "", 0, cfbFree, 0, 0)
	entry(3, "", 0, cfbFree, 0, 0)

	out := make([]byte, 0, cfbSector*(3+streamSectors))
	out = append(out, header...)
	out = append(out, fat...)
	out = append(out, dir...)
	return append(out, stream...)
}
