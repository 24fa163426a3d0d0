// Package cast decodes asciicast terminal recordings.
//
// Two on-disk formats are understood:
//
//   - v1: a single JSON object carrying width, height and a "stdout" array
//     of [delay, data] pairs, where delay is relative to the previous chunk
//   - v2: newline-delimited JSON; the first line is a header object with
//     "version": 2, every following line starting with '[' is an event
//     [time, kind, data] with time absolute from the start of the session
//
// The format is chosen by sniffing the first line. A file whose first line
// is a v2 header is always decoded as v2, so a damaged v2 file reports a
// [FormatError] pointing at the offending line instead of being misread as
// v1.
//
// # Example
//
//	rec, err := cast.Parse(data)
//	if err != nil {
//	    return err
//	}
//	for ev, err := range rec.Events() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("%.3f %q\n", ev.Time, ev.Data)
//	}
package cast
