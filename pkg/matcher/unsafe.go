package matcher

import "unsafe"

// unsafeBytes views the bytes of s without copying. Used for the
// case-sensitive build path, where pattern bytes are fed to the automaton
// verbatim; the automaton never mutates its input.
func unsafeBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
