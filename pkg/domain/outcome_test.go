package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotice_CompleteFromIdle(t *testing.T) {
	n := Notice{Status: NoticeIdle}
	require.NoError(t, n.Complete(Delivered()))
	assert.Equal(t, NoticeDelivered, n.Status)
	assert.Empty(t, n.Diagnostic)

	n = Notice{Status: NoticeIdle}
	require.NoError(t, n.Complete(Failed("connection refused")))
	assert.Equal(t, NoticeFailed, n.Status)
	assert.Equal(t, "connection refused", n.Diagnostic)
}

func TestNotice_CompleteTwiceRejected(t *testing.T) {
	n := Notice{Status: NoticeIdle}
	require.NoError(t, n.Complete(Delivered()))
	assert.ErrorIs(t, n.Complete(Delivered()), ErrInvalidTransition)
}

func TestNotice_Dismiss(t *testing.T) {
	n := Notice{Status: NoticeFailed, Diagnostic: "boom"}
	require.NoError(t, n.Dismiss())
	assert.Equal(t, NoticeIdle, n.Status)
	assert.Empty(t, n.Diagnostic)

	// Idle cannot be dismissed again.
	assert.ErrorIs(t, n.Dismiss(), ErrInvalidTransition)
}

func TestAnswers_CloneIsolation(t *testing.T) {
	a := Answers{
		"alcohol": {Selections: []string{"red"}},
		"name":    {Text: "Anna"},
	}
	b := a.Clone()
	b["alcohol"].Selections[0] = "white"
	bv := b["name"]
	bv.Text = "Ivan"
	b["name"] = bv

	assert.Equal(t, "red", a["alcohol"].Selections[0])
	assert.Equal(t, "Anna", a["name"].Text)
}
