package fitdecode

import "fmt"

// BadHeaderError reports a malformed FIT file header: wrong magic, an
// impossible header_size, or a truncated extended header.
type BadHeaderError struct {
	Reason string
}

func (e *BadHeaderError) Error() string {
	return "fitdecode: bad header: " + e.Reason
}

// CRCMismatchError reports a header or footer CRC that did not match the
// computed value, raised only under the Enabled CRC policy.
type CRCMismatchError struct {
	Where    string // "header" or "footer"
	Computed uint16
	Read     uint16
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("fitdecode: %s crc mismatch: computed %#04x, read %#04x", e.Where, e.Computed, e.Read)
}

// UnexpectedEOFError reports a short read: fewer bytes were available than
// the wire format promised.
type UnexpectedEOFError struct {
	Expected int
	Got      int
	Offset   int64
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("fitdecode: unexpected eof: expected %d bytes, got %d @ offset %d", e.Expected, e.Got, e.Offset)
}

// ParseError reports a structural violation of the FIT protocol: an
// undefined local message number, a field size that isn't a multiple of its
// base type's size, a developer field referencing an unregistered type, and
// so on. Offset is the absolute stream offset at which the violation was
// detected: just past the record header byte for a bad definition or an
// undefined local message number, and the end of the record for a malformed
// field_description.
type ParseError struct {
	Offset  int64
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fitdecode: parse error @ offset %d: %s", e.Offset, e.Message)
}

// errEndOfStream is a private sentinel: a clean EOF exactly at the start of
// a new file's header, which terminates iteration rather than failing it.
// It never escapes the package; Reader.Next translates it to (nil, io.EOF).
type errEndOfStream struct{}

func (errEndOfStream) Error() string { return "fitdecode: end of stream" }
