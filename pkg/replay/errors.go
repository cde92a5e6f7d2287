package replay

import "fmt"

// FormatError marks a container that is not a supported recording at all:
// wrong magic, unsupported version or a truncated header. Callers may archive
// the file for later inspection instead of failing the request.
type FormatError struct {
	Reason  string
	Magic   uint32
	Version uint32
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported replay container: %s", e.Reason)
}

// StructuralError marks a container that decoded fine but whose document does
// not have the expected shape, for example a vehicles record that is not a
// single-element list.
type StructuralError struct {
	Section string
	Reason  string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed %s section: %s", e.Section, e.Reason)
}
