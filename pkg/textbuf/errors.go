package textbuf

import "errors"

// ErrThresholdReached is returned when an append operation cannot
// complete within the buffer's threshold. The characters that did fit
// were written before the error was raised; the buffer holds a valid,
// truncated result.
var ErrThresholdReached = errors.New("textbuf: threshold reached")
