package common

// IsIdentStart reports whether c may begin a Fry identifier.
func IsIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// IsIdentCont reports whether c may continue a Fry identifier.
func IsIdentCont(c byte) bool {
	return IsIdentStart(c) || IsDigit(c) || c == '-'
}

// IsDigit reports whether c is a decimal digit.
func IsDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// IsValidIdentifier checks if the given string is a valid Fry identifier.
func IsValidIdentifier(idstr string) bool {
	if idstr == "" || !IsIdentStart(idstr[0]) {
		return false
	}

	for i := 1; i < len(idstr); i++ {
		if !IsIdentCont(idstr[i]) {
			return false
		}
	}

	return true
}
