package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/folio-site/folio/internal/adapters/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batches struct {
	mu  sync.Mutex
	got [][]string
}

func (b *batches) record(paths []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, paths)
}

func (b *batches) all() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.got...)
}

func TestDebouncer_CoalescesAndSorts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("photos/c.jpg")
		d.Add("photos/a.jpg")
		d.Add("photos/b.png")
		d.Add("photos/a.jpg")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"photos/a.jpg", "photos/b.png", "photos/c.jpg"}}, b.all())
	})
}

func TestDebouncer_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("a.jpg")
		time.Sleep(60 * time.Millisecond)
		d.Add("b.jpg")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, b.all())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, [][]string{{"a.jpg", "b.jpg"}}, b.all())
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Flush()
		assert.Empty(t, b.all())

		d.Add("a.jpg")
		d.Flush()
		require.Equal(t, [][]string{{"a.jpg"}}, b.all())

		// The stopped timer must not deliver the batch again.
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, b.all(), 1)
	})
}

func TestDebouncer_FlushAfterFire(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(50*time.Millisecond, b.record)

		d.Add("a.jpg")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		require.Len(t, b.all(), 1)

		d.Flush()
		assert.Len(t, b.all(), 1)
	})
}

func TestDebouncer_StopDiscards(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(50*time.Millisecond, b.record)

		d.Add("a.jpg")
		d.Stop()
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, b.all())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)
		d.Add("a.jpg")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
