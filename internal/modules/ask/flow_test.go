package ask

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/giftloom/core/internal/models"
)

type insertCall struct {
	giftSiteID string
	kind       models.ResponseKind
	message    *string
	date       *string
}

type fakeWriter struct {
	calls []insertCall
	err   error
}

func (f *fakeWriter) Insert(_ context.Context, giftSiteID string, kind models.ResponseKind, message, date *string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, insertCall{giftSiteID: giftSiteID, kind: kind, message: message, date: date})
	return nil
}

func TestNoAnswerSubmitsImmediately(t *testing.T) {
	w := &fakeWriter{}
	flow := NewFlow("site-1", w)

	require.NoError(t, flow.Select(context.Background(), models.ResponseNo))
	require.Equal(t, StateAnswered, flow.State())

	require.Len(t, w.calls, 1)
	require.Equal(t, models.ResponseNo, w.calls[0].kind)
	require.Nil(t, w.calls[0].message, "no-responses never carry a message")
	require.Nil(t, w.calls[0].date)
}

func TestYesAnswerCollectsMessageAndDate(t *testing.T) {
	w := &fakeWriter{}
	flow := NewFlow("site-1", w)
	ctx := context.Background()

	require.NoError(t, flow.Select(ctx, models.ResponseYes))
	require.Equal(t, StateAnswering, flow.State())
	require.Empty(t, w.calls, "nothing written before submit")

	require.NoError(t, flow.SetMessage("I love you"))
	require.NoError(t, flow.SetDate("2026-02-14"))
	require.NoError(t, flow.Submit(ctx))
	require.Equal(t, StateAnswered, flow.State())

	require.Len(t, w.calls, 1)
	require.Equal(t, "site-1", w.calls[0].giftSiteID)
	require.Equal(t, models.ResponseYes, w.calls[0].kind)
	require.Equal(t, "I love you", *w.calls[0].message)
	require.Equal(t, "2026-02-14", *w.calls[0].date)
}

func TestMaybeAnswerUsesTheForm(t *testing.T) {
	w := &fakeWriter{}
	flow := NewFlow("site-1", w)

	require.NoError(t, flow.Select(context.Background(), models.ResponseMaybe))
	require.Equal(t, StateAnswering, flow.State())
}

func TestBackClearsEnteredFields(t *testing.T) {
	w := &fakeWriter{}
	flow := NewFlow("site-1", w)
	ctx := context.Background()

	require.NoError(t, flow.Select(ctx, models.ResponseYes))
	require.NoError(t, flow.SetMessage("draft message"))
	require.NoError(t, flow.Back())
	require.Equal(t, StateAsking, flow.State())

	require.NoError(t, flow.Select(ctx, models.ResponseYes))
	require.NoError(t, flow.Submit(ctx))

	require.Len(t, w.calls, 1)
	require.Nil(t, w.calls[0].message, "cleared message must not be resubmitted")
}

func TestAnsweredIsTerminal(t *testing.T) {
	w := &fakeWriter{}
	flow := NewFlow("site-1", w)
	ctx := context.Background()

	require.NoError(t, flow.Select(ctx, models.ResponseNo))
	require.ErrorIs(t, flow.Select(ctx, models.ResponseYes), ErrInvalidTransition)
	require.ErrorIs(t, flow.Back(), ErrInvalidTransition)
	require.ErrorIs(t, flow.Submit(ctx), ErrInvalidTransition)
	require.Len(t, w.calls, 1, "exactly one write per view instance")
}

func TestWriteFailureRecoversToAnswering(t *testing.T) {
	boom := errors.New("insert failed")
	w := &fakeWriter{err: boom}
	flow := NewFlow("site-1", w)
	ctx := context.Background()

	require.NoError(t, flow.Select(ctx, models.ResponseYes))
	require.NoError(t, flow.SetMessage("I love you"))
	require.ErrorIs(t, flow.Submit(ctx), boom)
	require.Equal(t, StateAnswering, flow.State())

	// The retry succeeds with the retained message.
	w.err = nil
	require.NoError(t, flow.Submit(ctx))
	require.Equal(t, StateAnswered, flow.State())
	require.Equal(t, "I love you", *w.calls[0].message)
}

func TestWriteFailureOnNoPathRecoversToAsking(t *testing.T) {
	boom := errors.New("insert failed")
	w := &fakeWriter{err: boom}
	flow := NewFlow("site-1", w)
	ctx := context.Background()

	require.ErrorIs(t, flow.Select(ctx, models.ResponseNo), boom)
	require.Equal(t, StateAsking, flow.State())

	w.err = nil
	require.NoError(t, flow.Select(ctx, models.ResponseNo))
	require.Equal(t, StateAnswered, flow.State())
}

func TestSelectRejectsUnknownKind(t *testing.T) {
	flow := NewFlow("site-1", &fakeWriter{})
	require.Error(t, flow.Select(context.Background(), models.ResponseKind("perhaps")))
	require.Equal(t, StateAsking, flow.State())
}
