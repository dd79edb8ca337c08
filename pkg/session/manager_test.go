package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdvornichenko/birthday/pkg/adapters/memory"
	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/kdvornichenko/birthday/pkg/ports"
	"github.com/kdvornichenko/birthday/pkg/schema"
)

// recordingCourier captures delivered messages and can simulate slow or
// failing endpoints.
type recordingCourier struct {
	mu       sync.Mutex
	messages []string
	err      error
	delay    time.Duration
}

func (c *recordingCourier) Deliver(ctx context.Context, message string) error {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, message)
	return nil
}

func (c *recordingCourier) delivered() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

func newTestManager(t *testing.T, courier ports.Courier) *Manager {
	t.Helper()
	s, err := schema.Load("en")
	require.NoError(t, err)
	return NewManager(s, memory.NewStore(), courier)
}

// fillIdentity sets the required text fields so the response validates.
func fillIdentity(t *testing.T, m *Manager, id string) {
	t.Helper()
	ctx := context.Background()
	_, err := m.SetField(ctx, id, "name", "Ada")
	require.NoError(t, err)
	_, err = m.SetField(ctx, id, "surname", "Lovelace")
	require.NoError(t, err)
}

func TestStartInitializesDefaults(t *testing.T) {
	m := newTestManager(t, &recordingCourier{})
	resp, err := m.Start(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	attendance := m.Schema().Attendance.Field
	assert.NotEqual(t, m.Schema().Attendance.Declining, resp.Answers[attendance].Text,
		"a fresh session should default to attending")
	assert.Equal(t, domain.NoticeIdle, resp.Notice.Status)

	// The session is persisted immediately.
	loaded, err := m.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, loaded.ID)
}

func TestGetUnknownSession(t *testing.T) {
	m := newTestManager(t, &recordingCourier{})
	_, err := m.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSetFieldPersists(t *testing.T) {
	m := newTestManager(t, &recordingCourier{})
	ctx := context.Background()
	resp, err := m.Start(ctx)
	require.NoError(t, err)

	updated, err := m.SetField(ctx, resp.ID, "name", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.Answers["name"].Text)

	loaded, err := m.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", loaded.Answers["name"].Text)
}

func TestSetFieldUnknownField(t *testing.T) {
	m := newTestManager(t, &recordingCourier{})
	ctx := context.Background()
	resp, err := m.Start(ctx)
	require.NoError(t, err)

	_, err = m.SetField(ctx, resp.ID, "favorite_color", "blue")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestSubmitDelivers(t *testing.T) {
	courier := &recordingCourier{}
	m := newTestManager(t, courier)
	ctx := context.Background()
	resp, err := m.Start(ctx)
	require.NoError(t, err)
	fillIdentity(t, m, resp.ID)

	result, err := m.Submit(ctx, resp.ID)
	require.NoError(t, err)
	require.Empty(t, result.Problems)

	assert.Equal(t, domain.NoticeDelivered, result.Response.Notice.Status)
	messages := courier.delivered()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "Ada Lovelace")
	assert.False(t, m.InFlight(resp.ID))
}

func TestSubmitValidationBlocksDelivery(t *testing.T) {
	courier := &recordingCourier{}
	m := newTestManager(t, courier)
	ctx := context.Background()
	resp, err := m.Start(ctx)
	require.NoError(t, err)

	result, err := m.Submit(ctx, resp.ID)
	require.NoError(t, err)

	assert.Contains(t, result.Problems, "name")
	assert.Contains(t, result.Problems, "surname")
	assert.Empty(t, courier.delivered(), "nothing may be sent while the response is invalid")
	assert.Equal(t, domain.NoticeIdle, result.Response.Notice.Status)
}

func TestSubmitFailureRecordsDiagnostic(t *testing.T) {
	courier := &recordingCourier{err: errors.New("sendMessage failed: 400 Bad Request: chat not found")}
	m := newTestManager(t, courier)
	ctx := context.Background()
	resp, err := m.Start(ctx)
	require.NoError(t, err)
	fillIdentity(t, m, resp.ID)

	result, err := m.Submit(ctx, resp.ID)
	require.NoError(t, err)
	require.Empty(t, result.Problems)

	assert.Equal(t, domain.NoticeFailed, result.Response.Notice.Status)
	assert.Contains(t, result.Response.Notice.Diagnostic, "chat not found")

	// Answers survive the failed attempt untouched.
	loaded, err := m.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", loaded.Answers["name"].Text)
}

func TestSubmitWhileInFlightIsRejected(t *testing.T) {
	courier := &recordingCourier{delay: 200 * time.Millisecond}
	m := newTestManager(t, courier)
	ctx := context.Background()
	resp, err := m.Start(ctx)
	require.NoError(t, err)
	fillIdentity(t, m, resp.ID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := m.Submit(ctx, resp.ID)
		assert.NoError(t, err)
	}()

	// Wait until the first submission claims the in-flight slot.
	require.Eventually(t, func() bool {
		return m.InFlight(resp.ID)
	}, time.Second, 5*time.Millisecond)

	_, err = m.Submit(ctx, resp.ID)
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	// Field edits stay possible while the delivery is outstanding.
	_, err = m.SetField(ctx, resp.ID, "about", "see you there")
	assert.NoError(t, err)

	<-done
	assert.Len(t, courier.delivered(), 1)
	assert.False(t, m.InFlight(resp.ID))
}

func TestResubmitAfterFailureSupersedesNotice(t *testing.T) {
	courier := &recordingCourier{err: errors.New("boom")}
	m := newTestManager(t, courier)
	ctx := context.Background()
	resp, err := m.Start(ctx)
	require.NoError(t, err)
	fillIdentity(t, m, resp.ID)

	result, err := m.Submit(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, domain.NoticeFailed, result.Response.Notice.Status)

	// The endpoint recovers; submitting again without dismissing works.
	courier.mu.Lock()
	courier.err = nil
	courier.mu.Unlock()

	result, err = m.Submit(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NoticeDelivered, result.Response.Notice.Status)
	assert.Empty(t, result.Response.Notice.Diagnostic)
}

func TestDismiss(t *testing.T) {
	courier := &recordingCourier{}
	m := newTestManager(t, courier)
	ctx := context.Background()
	resp, err := m.Start(ctx)
	require.NoError(t, err)
	fillIdentity(t, m, resp.ID)

	_, err = m.Submit(ctx, resp.ID)
	require.NoError(t, err)

	dismissed, err := m.Dismiss(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NoticeIdle, dismissed.Notice.Status)

	// Dismissing an idle notice is an invalid transition.
	_, err = m.Dismiss(ctx, resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeleteAndList(t *testing.T) {
	m := newTestManager(t, &recordingCourier{})
	ctx := context.Background()
	a, err := m.Start(ctx)
	require.NoError(t, err)
	b, err := m.Start(ctx)
	require.NoError(t, err)

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)

	require.NoError(t, m.Delete(ctx, a.ID))
	_, err = m.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
