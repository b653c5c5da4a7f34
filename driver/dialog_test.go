package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDialog struct {
	kind      string
	message   string
	accepted  bool
	dismissed bool
}

func (d *fakeDialog) Type() string    { return d.kind }
func (d *fakeDialog) Message() string { return d.message }
func (d *fakeDialog) Accept() error   { d.accepted = true; return nil }
func (d *fakeDialog) Dismiss() error  { d.dismissed = true; return nil }

func TestDialogHandlerIsConsumedOnce(t *testing.T) {
	var slot DialogSlot
	var seen []string
	slot.Set(func(d Dialog) {
		seen = append(seen, d.Message())
		_ = d.Accept()
	})
	assert.True(t, slot.Pending())

	first := &fakeDialog{kind: "confirm", message: "Remove a by b"}
	slot.Dispatch(first)
	assert.True(t, first.accepted)
	assert.False(t, slot.Pending())

	second := &fakeDialog{kind: "confirm", message: "Remove c by d"}
	slot.Dispatch(second)
	assert.False(t, second.accepted)
	assert.True(t, second.dismissed)

	assert.Equal(t, []string{"Remove a by b"}, seen)
	assert.Equal(t, []string{`confirm: "Remove c by d"`}, slot.Unhandled())
}

func TestSetReplacesPendingHandler(t *testing.T) {
	var slot DialogSlot
	var which string
	slot.Set(func(Dialog) { which = "first" })
	slot.Set(func(Dialog) { which = "second" })
	slot.Dispatch(&fakeDialog{kind: "alert"})
	assert.Equal(t, "second", which)
	assert.Empty(t, slot.Unhandled())
}
