// SPDX-License-Identifier: EPL-2.0

// Package lasterr provides a sticky last-error slot.
//
// The library itself reports failures through explicit error returns.
// Two places still need a slot instead of a return value:
//
//   - a background decode goroutine has no caller to return to, so its
//     reader keeps the failure in a Reporter until the next poll or
//     pull surfaces it;
//   - foreign-function binding shims that expose a last_error()
//     style lookup keep one Reporter per thread of the host runtime
//     and Record into it whenever a call fails.
//
// A Reporter holds at most one error.  Recording releases the previous
// value, so callers must not hold on to an error across the next call
// that may fail:
//
//	var report lasterr.Reporter
//	report.Record(err)
//	if err := report.Last(); err != nil {
//	    // handle, then stop referencing err before the next Record
//	}
package lasterr
