// Package version orders distribution package revisions the way rpm does:
// strings are split into digit and letter runs and compared run by run.
package version

import "strings"

// Order is the result of comparing two revisions
type Order int

const (
	Less    Order = -1
	Equal   Order = 0
	Greater Order = 1
)

// String returns the string representation of Order
func (o Order) String() string {
	switch o {
	case Less:
		return "LESS"
	case Equal:
		return "EQUAL"
	case Greater:
		return "GREATER"
	default:
		return "UNKNOWN"
	}
}

// Invert returns the order seen from the other side
func (o Order) Invert() Order {
	return -o
}

// Compare orders (versionA, releaseA) against (versionB, releaseB). Releases
// are only consulted when the versions are equal.
func Compare(versionA, releaseA, versionB, releaseB string) Order {
	if o := CompareSegment(versionA, versionB); o != Equal {
		return o
	}
	return CompareSegment(releaseA, releaseB)
}

// CompareEVR is Compare preceded by a numeric epoch comparison.
func CompareEVR(epochA int, versionA, releaseA string, epochB int, versionB, releaseB string) Order {
	switch {
	case epochA > epochB:
		return Greater
	case epochA < epochB:
		return Less
	}
	return Compare(versionA, releaseA, versionB, releaseB)
}

// CompareSegment orders a single version or release string.
//
// An empty string sorts below everything else. Otherwise both strings are
// consumed as alternating digit and letter runs, separators ignored. A digit
// run beats a letter run. When one side runs out first, a digit run left on
// the other side makes it greater and a letter run makes it less, so "1.0a"
// sorts before "1.0" and "1.0.1" after it.
func CompareSegment(a, b string) Order {
	if a == b {
		return Equal
	}
	if a == "" {
		return Less
	}
	if b == "" {
		return Greater
	}

	for {
		a = trimSeparators(a)
		b = trimSeparators(b)
		if a == "" || b == "" {
			break
		}

		var runA, runB string
		runA, a = nextRun(a)
		runB, b = nextRun(b)

		numA, numB := isDigit(runA[0]), isDigit(runB[0])
		if numA != numB {
			if numA {
				return Greater
			}
			return Less
		}

		var o Order
		if numA {
			o = compareNumeric(runA, runB)
		} else {
			o = Order(strings.Compare(runA, runB))
		}
		if o != Equal {
			return o
		}
	}

	switch {
	case a == "" && b == "":
		return Equal
	case a == "":
		return tailOrder(b).Invert()
	default:
		return tailOrder(a)
	}
}

// tailOrder is the order of a non-empty leftover run against an exhausted string.
func tailOrder(rest string) Order {
	if isDigit(rest[0]) {
		return Greater
	}
	return Less
}

func compareNumeric(a, b string) Order {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	switch {
	case len(a) > len(b):
		return Greater
	case len(a) < len(b):
		return Less
	}
	return Order(strings.Compare(a, b))
}

// nextRun splits s, which must start with an alphanumeric byte, into its
// leading digit or letter run and the remainder.
func nextRun(s string) (run, rest string) {
	digits := isDigit(s[0])
	i := 1
	for i < len(s) {
		if digits && !isDigit(s[i]) || !digits && !isAlpha(s[i]) {
			break
		}
		i++
	}
	return s[:i], s[i:]
}

func trimSeparators(s string) string {
	i := 0
	for i < len(s) && !isAlnum(s[i]) {
		i++
	}
	return s[i:]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isAlnum(c byte) bool { return isDigit(c) || isAlpha(c) }
