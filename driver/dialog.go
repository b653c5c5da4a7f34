package driver

import (
	"fmt"
	"sync"
)

// DialogHandler inspects a dialog and must accept or dismiss it.
type DialogHandler func(Dialog)

// DialogSlot holds at most one pending DialogHandler. Each handler is consumed by exactly one
// dialog. A dialog that arrives while the slot is empty is dismissed and remembered, because a
// browser waiting on an unanswered confirm() would otherwise block the scenario forever.
type DialogSlot struct {
	handler   DialogHandler
	unhandled []string
	lock      sync.Mutex
}

// Set registers the handler for the next dialog, replacing any handler not yet consumed.
func (s *DialogSlot) Set(handler DialogHandler) {
	s.lock.Lock()
	s.handler = handler
	s.lock.Unlock()
}

// Dispatch hands the dialog to the pending handler and empties the slot.
func (s *DialogSlot) Dispatch(d Dialog) {
	s.lock.Lock()
	handler := s.handler
	s.handler = nil
	if handler == nil {
		s.unhandled = append(s.unhandled, fmt.Sprintf("%s: %q", d.Type(), d.Message()))
	}
	s.lock.Unlock()

	if handler == nil {
		_ = d.Dismiss()
		return
	}
	handler(d)
}

// Pending reports whether a handler is waiting for a dialog.
func (s *DialogSlot) Pending() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.handler != nil
}

// Unhandled returns descriptions of the dialogs that were dismissed for lack of a handler.
func (s *DialogSlot) Unhandled() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]string(nil), s.unhandled...)
}
