package domain

// asinLength is the fixed length of a marketplace product identifier.
const asinLength = 10

// IsASIN reports whether s looks like a marketplace product identifier:
// a 10-character alphanumeric code beginning with "B0". Lookup flows use
// this to decide whether a search term should trigger an identifier
// fetch.
func IsASIN(s string) bool {
	if len(s) != asinLength {
		return false
	}
	if s[0] != 'B' || s[1] != '0' {
		return false
	}
	for i := 2; i < asinLength; i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		default:
			return false
		}
	}
	return true
}
