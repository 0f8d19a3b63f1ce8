package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestShowAssignsUniqueIDs(t *testing.T) {
	q := NewQueue(time.Minute, nil, zap.NewNop())
	defer q.Close()

	a := q.Show("saqlandi", KindSuccess)
	b := q.Show("xatolik", KindError)

	require.NotEqual(t, a.ID, b.ID)
	list := q.List()
	require.Len(t, list, 2)
	require.Equal(t, KindSuccess, list[0].Kind)
	require.Equal(t, KindError, list[1].Kind)
	require.Equal(t, a.CreatedAt.Add(time.Minute), a.ExpiresAt)
}

func TestToastExpires(t *testing.T) {
	q := NewQueue(20*time.Millisecond, nil, zap.NewNop())
	defer q.Close()

	q.Show("role saved", KindSuccess)
	require.Len(t, q.List(), 1)

	require.Eventually(t, func() bool { return len(q.List()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestDismissBeforeExpiry(t *testing.T) {
	q := NewQueue(100*time.Millisecond, nil, zap.NewNop())
	defer q.Close()

	dismissed := q.Show("first", KindInfo)
	require.True(t, q.Dismiss(dismissed.ID))
	require.Empty(t, q.List())

	time.Sleep(60 * time.Millisecond)
	kept := q.Show("second", KindInfo)

	// past the first toast's deadline, well before the second's
	time.Sleep(60 * time.Millisecond)
	require.False(t, q.Dismiss(dismissed.ID))
	require.Len(t, q.List(), 1)
	require.Equal(t, kept.ID, q.List()[0].ID)
}

func TestDismissIsIdempotent(t *testing.T) {
	q := NewQueue(10*time.Millisecond, nil, zap.NewNop())
	defer q.Close()

	require.False(t, q.Dismiss(uuid.New()))

	toast := q.Show("bye", KindInfo)
	require.Eventually(t, func() bool { return len(q.List()) == 0 }, time.Second, 2*time.Millisecond)
	require.False(t, q.Dismiss(toast.ID))
}

func TestSinkReceivesToasts(t *testing.T) {
	var mu sync.Mutex
	var got []Toast
	q := NewQueue(time.Minute, func(t Toast) {
		mu.Lock()
		got = append(got, t)
		mu.Unlock()
	}, zap.NewNop())
	defer q.Close()

	shown := q.Show("hello", KindInfo)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	require.Equal(t, shown.ID, got[0].ID)
}

func TestDefaultDuration(t *testing.T) {
	q := NewQueue(0, nil, zap.NewNop())
	defer q.Close()
	require.Equal(t, DefaultDuration, q.duration)
}

func TestClosedQueueStillForwardsToSink(t *testing.T) {
	var got []string
	q := NewQueue(time.Minute, func(t Toast) { got = append(got, t.Message) }, zap.NewNop())
	q.Close()

	q.Show("role \"Kassir\" saved", KindSuccess)
	require.Equal(t, []string{"role \"Kassir\" saved"}, got)
	require.Empty(t, q.List())
}
