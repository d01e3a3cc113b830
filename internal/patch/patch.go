// Package patch implements a single-pass structural splice over a raw byte
// buffer. Spans are located by literal start/end markers instead of parsing,
// so every byte outside an edited span survives exactly as written,
// whitespace, encoding and attribute order included.
package patch

import "bytes"

// MatchFunc decides whether the span [start, end) should be transformed.
// Implementations must only look at buf[start:end].
type MatchFunc func(buf []byte, start, end int) bool

// TransformFunc rewrites the span [start, end) and returns the full new
// buffer. It may shrink the buffer (deletion) or keep its length (rewrite).
type TransformFunc func(buf []byte, start, end int) []byte

// Result is the outcome of a Replace pass.
type Result struct {
	// Buf is the buffer after all edits.
	Buf []byte

	// Matched counts spans that were transformed.
	Matched int

	// Truncated counts start markers with no matching end marker. The scan
	// stops at the first one, leaving the tail untouched; a nonzero count
	// means the input was malformed and the pass is incomplete.
	Truncated int
}

// Replace scans buf left to right for spans delimited by startMarker and
// endMarker and applies transform to every span accepted by match.
//
// When trimWhitespace is set, a span grows backward over the spaces and tabs
// preceding the start marker and forward over the CR/LF run following the
// end marker, so deleting a record also deletes its indentation and its
// line break.
//
// After a transform the scan resumes from the span start in the new buffer,
// never from a stale offset: a record that now begins where a deleted one
// used to be is still found, and a length-preserving rewrite is not matched
// twice because the rewrite removed what the predicate looked for. After a
// non-match the scan resumes past the span end, which guarantees forward
// progress and termination.
func Replace(buf, startMarker, endMarker []byte, match MatchFunc, transform TransformFunc, trimWhitespace bool) Result {
	res := Result{Buf: buf}

	next := 0
	for {
		start := bytes.Index(res.Buf[next:], startMarker)
		if start < 0 {
			return res
		}
		start += next

		if trimWhitespace {
			for start > 0 && (res.Buf[start-1] == ' ' || res.Buf[start-1] == '\t') {
				start--
			}
		}

		end := bytes.Index(res.Buf[start:], endMarker)
		if end < 0 {
			// Unterminated record. Not fatal: stop editing here and
			// leave the rest of the buffer as-is.
			res.Truncated++
			return res
		}
		end += start + len(endMarker)

		if trimWhitespace {
			for end < len(res.Buf) && (res.Buf[end] == '\r' || res.Buf[end] == '\n') {
				end++
			}
		}

		if !match(res.Buf, start, end) {
			next = end
			continue
		}

		res.Buf = transform(res.Buf, start, end)
		res.Matched++
		next = start
	}
}

// Excise is a TransformFunc that removes the span entirely.
func Excise(buf []byte, start, end int) []byte {
	out := make([]byte, 0, len(buf)-(end-start))
	out = append(out, buf[:start]...)
	return append(out, buf[end:]...)
}

// SwapOnce returns a TransformFunc replacing the first occurrence of old
// with new inside the span. The surrounding bytes are untouched.
func SwapOnce(old, new []byte) TransformFunc {
	return func(buf []byte, start, end int) []byte {
		span := bytes.Replace(buf[start:end], old, new, 1)
		out := make([]byte, 0, len(buf)-(end-start)+len(span))
		out = append(out, buf[:start]...)
		out = append(out, span...)
		return append(out, buf[end:]...)
	}
}

// ContainsAny returns a MatchFunc accepting spans that contain at least one
// of the given literal needles.
func ContainsAny(needles [][]byte) MatchFunc {
	return func(buf []byte, start, end int) bool {
		span := buf[start:end]
		for _, n := range needles {
			if bytes.Contains(span, n) {
				return true
			}
		}
		return false
	}
}
