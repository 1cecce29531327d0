package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// Document builds an ESC/POS byte stream. Widths are counted in runes so
// Arabic product names line up like Latin ones.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document for charWidth columns: 32 for 58mm paper,
// 48 for 72/80mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 48
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Width is the number of columns per line.
func (d *Document) Width() int { return d.width }

// Init sends ESC @.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width rule.
func (d *Document) Separator(char byte) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

// KeyValue prints key flush left and value flush right on one line.
func (d *Document) KeyValue(key, value string) *Document {
	return d.Text(d.spread(key, value))
}

// ItemLine prints "qty x name" with the line total flush right. Names that do
// not fit are truncated.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	prefix := fmt.Sprintf("%dx ", qty)
	room := d.width - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(total) - 1
	return d.Text(d.spread(prefix+truncate(name, room), total))
}

// QRCode prints data as a native QR symbol (GS ( k, model 2). size is the
// module size in dots, 1 to 16.
func (d *Document) QRCode(data string, size byte) *Document {
	if size < 1 || size > 16 {
		size = 6
	}
	d.buf.Write([]byte{GS, '(', 'k', 4, 0, 49, 65, 50, 0})
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 49, 67, size})
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 49, 69, 48})

	n := len(data) + 3
	d.buf.Write([]byte{GS, '(', 'k', byte(n % 256), byte(n / 256), 49, 80, 48})
	d.buf.WriteString(data)
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 49, 81, 48})
	return d.LineFeed()
}

// Barcode128 prints data as a CODE128 symbol in code set B with its text
// below. height is in dots; data longer than the command allows is cut.
func (d *Document) Barcode128(data string, height byte) *Document {
	if height == 0 {
		height = 80
	}
	payload := "{B" + data
	if len(payload) > 255 {
		payload = payload[:255]
	}
	d.buf.Write([]byte{GS, 'H', 2})
	d.buf.Write([]byte{GS, 'h', height})
	d.buf.Write([]byte{GS, 'w', 2})
	d.buf.Write([]byte{GS, 'k', 73, byte(len(payload))})
	d.buf.WriteString(payload)
	return d.LineFeed()
}

// Code128Printable reports whether every byte of s is in CODE128 set B.
func Code128Printable(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 32 || s[i] > 126 {
			return false
		}
	}
	return true
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func (d *Document) spread(left, right string) string {
	spaces := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}

func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
