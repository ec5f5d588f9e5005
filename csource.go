package u8g2

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

// CSource is a font as distributed in u8g2's C source files, where the blob is a string literal assigned to a uint8_t array.
type CSource struct {
	Name string // C identifier of the array

	// from the leading comment, if present
	FontName   string
	Copyright  string
	Glyphs     string
	BBXMode    string
	Attributes map[string]string

	Data []byte
}

// ToBlob returns the font blob of b, which is either a raw blob or a C source file.
func ToBlob(b []byte) ([]byte, error) {
	if !IsCSource(b) {
		return b, nil
	}
	src, err := ParseCSource(b)
	if err != nil {
		return nil, err
	}
	return src.Data, nil
}

// IsCSource returns true if b looks like a C source file rather than a raw font blob.
func IsCSource(b []byte) bool {
	b = bytes.TrimLeft(b, " \t\r\n")
	return bytes.HasPrefix(b, []byte("/*")) || bytes.HasPrefix(b, []byte("//")) || bytes.HasPrefix(b, []byte("#")) || bytes.HasPrefix(b, []byte("const "))
}

// ParseCSource parses a C source file containing one font, such as u8g2_font_6x10_tf.c. The returned data includes the string literal's terminating NUL if the declared array length includes it.
func ParseCSource(b []byte) (*CSource, error) {
	src := &CSource{
		Attributes: map[string]string{},
	}

	i := cSkipWhitespace(b, 0)
	if bytes.HasPrefix(b[i:], []byte("/*")) {
		end := bytes.Index(b[i+2:], []byte("*/"))
		if end == -1 {
			return nil, fmt.Errorf("csource: unterminated comment")
		}
		src.parseComment(b[i+2 : i+2+end])
		i += 2 + end + 2
	}

	decl := bytes.Index(b[i:], []byte("uint8_t"))
	if decl == -1 {
		return nil, fmt.Errorf("csource: missing uint8_t array declaration")
	}
	i = cSkipWhitespace(b, i+decl+len("uint8_t"))
	var name []byte
	name, i = cNextIdentifier(b, i)
	if len(name) == 0 {
		return nil, fmt.Errorf("csource: missing array name")
	}
	src.Name = string(name)

	size := -1
	i = cSkipWhitespace(b, i)
	if i < len(b) && b[i] == '[' {
		i = cSkipWhitespace(b, i+1)
		if i < len(b) && b[i] != ']' {
			v, n := strconv.ParseInt(b[i:])
			if n == 0 || v < 0 {
				return nil, fmt.Errorf("csource: bad array length for %v", src.Name)
			}
			size = int(v)
			i = cSkipWhitespace(b, i+n)
		}
		if len(b) <= i || b[i] != ']' {
			return nil, fmt.Errorf("csource: bad array length for %v", src.Name)
		}
		i++
	}

	eq := bytes.IndexByte(b[i:], '=')
	if eq == -1 {
		return nil, fmt.Errorf("csource: missing initializer for %v", src.Name)
	}
	i += eq + 1

	data := []byte{}
	for {
		i = cSkipWhitespace(b, i)
		if len(b) <= i {
			return nil, fmt.Errorf("csource: unterminated initializer for %v", src.Name)
		} else if b[i] == ';' {
			break
		} else if b[i] != '"' {
			return nil, fmt.Errorf("csource: unexpected %q in initializer for %v", b[i], src.Name)
		}

		var err error
		if data, i, err = cAppendStringLiteral(data, b, i+1); err != nil {
			return nil, fmt.Errorf("csource: %v: %w", src.Name, err)
		}
	}
	data = append(data, 0)

	if size != -1 {
		if len(data) == size+1 {
			data = data[:size] // literal exactly fills the array, NUL is dropped
		} else if len(data) != size {
			return nil, fmt.Errorf("csource: %v: string literal has %d bytes, array has %d", src.Name, len(data), size)
		}
	}
	src.Data = data
	return src, nil
}

func (src *CSource) parseComment(b []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(b))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		colon := bytes.IndexByte(line, ':')
		if colon <= 0 {
			continue
		}
		key := string(bytes.TrimSpace(line[:colon]))
		val := string(bytes.TrimSpace(line[colon+1:]))
		src.Attributes[key] = val
		switch key {
		case "Fontname":
			src.FontName = val
		case "Copyright":
			src.Copyright = val
		case "Glyphs":
			src.Glyphs = val
		case "BBX Build Mode":
			src.BBXMode = val
		}
	}
}

func cIsWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func cSkipWhitespace(b []byte, i int) int {
	for i < len(b) && cIsWhitespace(b[i]) {
		i++
	}
	return i
}

func cNextIdentifier(b []byte, i int) ([]byte, int) {
	start := i
	for i < len(b) && (b[i] == '_' || 'a' <= b[i] && b[i] <= 'z' || 'A' <= b[i] && b[i] <= 'Z' || i != start && '0' <= b[i] && b[i] <= '9') {
		i++
	}
	return b[start:i], i
}

func cIsOctal(c byte) bool {
	return '0' <= c && c <= '7'
}

func cHexValue(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// cAppendStringLiteral decodes the string literal starting after its opening quote at b[i] and appends it to data. It returns the position after the closing quote.
func cAppendStringLiteral(data []byte, b []byte, i int) ([]byte, int, error) {
	for {
		if len(b) <= i || b[i] == '\n' {
			return data, i, fmt.Errorf("unterminated string literal")
		} else if b[i] == '"' {
			return data, i + 1, nil
		} else if b[i] != '\\' {
			data = append(data, b[i])
			i++
			continue
		}

		i++
		if len(b) <= i {
			return data, i, fmt.Errorf("unterminated escape sequence")
		}
		c := b[i]
		i++
		switch c {
		case 'n':
			data = append(data, '\n')
		case 't':
			data = append(data, '\t')
		case 'r':
			data = append(data, '\r')
		case 'a':
			data = append(data, '\a')
		case 'b':
			data = append(data, '\b')
		case 'f':
			data = append(data, '\f')
		case 'v':
			data = append(data, '\v')
		case '\\', '\'', '"', '?':
			data = append(data, c)
		case 'x':
			var v int
			n := 0
			for ; i < len(b); i++ {
				d, ok := cHexValue(b[i])
				if !ok {
					break
				}
				v = v<<4 | int(d)
				n++
			}
			if n == 0 || 0xFF < v {
				return data, i, fmt.Errorf("bad hexadecimal escape sequence")
			}
			data = append(data, byte(v))
		default:
			if !cIsOctal(c) {
				return data, i, fmt.Errorf("unknown escape sequence \\%c", c)
			}
			v := int(c - '0')
			for n := 1; n < 3 && i < len(b) && cIsOctal(b[i]); n++ {
				v = v<<3 | int(b[i]-'0')
				i++
			}
			if 0xFF < v {
				return data, i, fmt.Errorf("bad octal escape sequence")
			}
			data = append(data, byte(v))
		}
	}
}
