package suggest

// lookahead is the resync window used after a mismatch.
const lookahead = 5

// Distance scores how far b is from a; smaller is closer. It walks both
// strings byte by byte counting matches, and on a mismatch looks up to four
// bytes ahead in either string for the current byte of the other, shifting
// that string's cursor to resynchronise. The score is the mean length minus
// the match count.
//
// Bytes past the end of either string never match. When either string is
// empty the score is the other's length.
func Distance(a, b string) float64 {
	if a == "" || b == "" {
		return float64(len(a) + len(b))
	}

	var (
		c       int
		offsetA int
		offsetB int
		matches int
	)
	for c+offsetA < len(a) && c+offsetB < len(b) {
		if a[c+offsetA] == b[c+offsetB] {
			matches++
		} else {
			offsetA, offsetB = 0, 0
			for h := 0; h < lookahead; h++ {
				if c+h < len(a) && a[c+h] == b[c] {
					offsetA = h
					break
				}
				if c+h < len(b) && b[c+h] == a[c] {
					offsetB = h
					break
				}
			}
		}
		c++
	}
	return float64(len(a)+len(b))/2 - float64(matches)
}
