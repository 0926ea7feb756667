package pulse

import "unsafe"

// AsBytes reinterprets a slice of plain values as its raw bytes
// without copying.
func AsBytes[T any](values []T) []byte {
	if len(values) == 0 {
		return nil
	}

	var zeroT T

	n := int(unsafe.Sizeof(zeroT)) * len(values)
	ptr := (*byte)(unsafe.Pointer(unsafe.SliceData(values)))

	return unsafe.Slice(ptr, n)
}
