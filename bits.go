package u8g2

// bitReader reads bit fields from a byte slice. Fields are stored least-significant bit first and may straddle byte boundaries. Reading past the end of the buffer sets EOF and returns zero.
type bitReader struct {
	buf []byte
	pos uint32 // byte position
	bit uint8  // bit position in buf[pos]
	eof bool
}

func newBitReader(buf []byte) *bitReader {
	return &bitReader{buf: buf}
}

// ReadBits reads an unsigned field of n bits, n <= 32.
func (r *bitReader) ReadBits(n uint8) uint32 {
	var v uint32
	for i := uint8(0); i < n; {
		if uint32(len(r.buf)) <= r.pos {
			r.eof = true
			return 0
		}
		m := 8 - r.bit
		if n-i < m {
			m = n - i
		}
		v |= uint32(r.buf[r.pos]>>r.bit) & (1<<m - 1) << i
		i += m
		r.bit += m
		if r.bit == 8 {
			r.pos++
			r.bit = 0
		}
	}
	return v
}

// ReadSigned reads a field of n bits, 0 < n, biased by 2^(n-1).
func (r *bitReader) ReadSigned(n uint8) int32 {
	return int32(r.ReadBits(n)) - int32(1)<<(n-1)
}

// ReadField reads a field as described by the font header.
func (r *bitReader) ReadField(field Field) int32 {
	if field.Signed {
		return r.ReadSigned(field.Bits)
	}
	return int32(r.ReadBits(field.Bits))
}

// Len returns the number of bytes consumed so far, counting a partially read byte as consumed.
func (r *bitReader) Len() uint32 {
	if r.bit != 0 {
		return r.pos + 1
	}
	return r.pos
}

func (r *bitReader) EOF() bool {
	return r.eof
}
