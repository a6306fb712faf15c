// Package ram provides a basic RAM implementation that can be attached
// to a region of the memory map.
package ram

// RAM represents a block of RAM. Addresses are relative to the start
// of the block and wrap around its size.
type RAM struct {
	data []uint8
}

// NewRAM returns a new RAM of the given size in bytes. A size of 0 is
// treated as 1.
func NewRAM(size uint32) *RAM {
	size = max(size, 1)
	return &RAM{
		data: make([]uint8, size),
	}
}

// Read returns the value at the given address.
func (r *RAM) Read(address uint16) uint8 {
	return r.data[int(address)%len(r.data)]
}

// Write writes the value to the given address.
func (r *RAM) Write(address uint16, value uint8) {
	r.data[int(address)%len(r.data)] = value
}

// Size returns the size of the RAM in bytes.
func (r *RAM) Size() int {
	return len(r.data)
}
