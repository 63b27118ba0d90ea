// Package scanner tells hardware barcode scanner input apart from human
// typing. USB scanners emulate a keyboard: they type the code as a rapid
// keystroke burst and finish with Enter, while a person types far more
// slowly. The split is a timing heuristic only; a very fast typist is
// indistinguishable from a scanner.
package scanner

import (
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultBurstGap is the largest inter-key gap still treated as part of
	// a scanner burst. Anything slower resets the buffer as manual input.
	DefaultBurstGap = 100 * time.Millisecond

	// DefaultMinLength is the buffer length a code must exceed on Enter to
	// count as a real scan.
	DefaultMinLength = 2
)

// Enter is the key name that terminates a scan burst.
const Enter = "Enter"

// Disambiguator accumulates keystrokes and emits completed barcode scans.
// Timing is taken from the key events themselves, so replayed or buffered
// event streams classify the same way live ones do.
//
// Not safe for concurrent use; each input source owns its own Disambiguator.
type Disambiguator struct {
	onScan    func(code string)
	burstGap  time.Duration
	minLength int

	buffer  []rune
	lastKey time.Time
}

func New(onScan func(code string)) *Disambiguator {
	return &Disambiguator{
		onScan:    onScan,
		burstGap:  DefaultBurstGap,
		minLength: DefaultMinLength,
	}
}

// Press feeds one keystroke with its event timestamp. It reports true when
// the key completed a recognised scan, in which case the caller should
// suppress the key's default action.
func (d *Disambiguator) Press(key string, at time.Time) bool {
	if !d.lastKey.IsZero() && at.Sub(d.lastKey) > d.burstGap {
		// Gap too large: whatever was buffered was manual typing.
		d.buffer = d.buffer[:0]
	}
	d.lastKey = at

	if key == Enter {
		if len(d.buffer) > d.minLength {
			d.onScan(string(d.buffer))
			d.buffer = d.buffer[:0]
			return true
		}
		d.buffer = d.buffer[:0]
		return false
	}

	if r, size := utf8.DecodeRuneInString(key); key != "" && size == len(key) && unicode.IsPrint(r) {
		d.buffer = append(d.buffer, r)
	}
	return false
}

// Reset discards any buffered input.
func (d *Disambiguator) Reset() {
	d.buffer = d.buffer[:0]
	d.lastKey = time.Time{}
}
