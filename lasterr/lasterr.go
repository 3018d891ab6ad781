// SPDX-License-Identifier: EPL-2.0

package lasterr

import "sync/atomic"

// Reporter is a single-slot sticky error sink.
//
// Record overwrites the previous error; the old value is released to
// the garbage collector, so a caller must stop referencing the result
// of an earlier Last before triggering any operation that may Record
// again.  Last never clears the slot; Clear does.
//
// Record, Last and Clear are single atomic pointer operations: safe to
// call from any goroutine, including a realtime one.
type Reporter struct {
	slot atomic.Pointer[error]
}

// Record stores err as the most recent error.  A nil err clears the
// slot, same as Clear.
func (r *Reporter) Record(err error) {
	if err == nil {
		r.slot.Store(nil)
		return
	}
	r.slot.Store(&err)
}

// Last returns the most recently recorded error, or nil.
func (r *Reporter) Last() error {
	p := r.slot.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Clear empties the slot.
func (r *Reporter) Clear() {
	r.slot.Store(nil)
}
