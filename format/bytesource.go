package format

// ByteSource is a randomly addressable run of bytes. It stands in for text
// held outside normally addressable memory, such as MCU flash reached
// through a read primitive. Both format strings and %s arguments may be
// supplied this way.
type ByteSource interface {
	// ByteAt returns the byte at index i. i must be in [0, Len()).
	ByteAt(i int) byte
	// Len returns the number of bytes available.
	Len() int
}

// MemBytes adapts an in-memory byte slice to ByteSource.
type MemBytes []byte

func (m MemBytes) ByteAt(i int) byte { return m[i] }
func (m MemBytes) Len() int          { return len(m) }
