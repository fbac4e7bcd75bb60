package entry_test

import (
	"testing"
	"time"

	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/core/domain/model/entry"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)

func newEntry(t *testing.T) *entry.Entry {
	t.Helper()
	q, err := kernel.NewQuantities(1, 2, 3)
	require.NoError(t, err)
	e, err := entry.NewEntry(10, 20, q, "alice", now)
	require.NoError(t, err)
	return e
}

func TestNewEntry(t *testing.T) {
	t.Run("should create waiting entry", func(t *testing.T) {
		e := newEntry(t)

		require.NoError(t, e.Validate())
		assert.Equal(t, int64(10), e.DeliveryID())
		assert.Equal(t, int64(20), e.ZoneID())
		assert.Equal(t, entry.Waiting, e.Status())
	})

	t.Run("should require delivery and zone", func(t *testing.T) {
		_, err := entry.NewEntry(0, 0, kernel.Quantities{}, "alice", now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "deliveryId")
		assert.Contains(t, err.Error(), "zoneId")
	})

	t.Run("changes are filed under the delivery", func(t *testing.T) {
		e := newEntry(t)
		require.NoError(t, e.AssignID(7))

		changes := e.PullChanges()

		require.Len(t, changes, 1)
		assert.Equal(t, entry.EntityType, changes[0].EntityType)
		assert.Equal(t, int64(7), changes[0].EntityID)
		assert.Equal(t, delivery.EntityType, changes[0].AggregateType)
		assert.Equal(t, int64(10), changes[0].AggregateID)
	})
}

func TestEntry_Processing(t *testing.T) {
	t.Run("finish without start is rejected", func(t *testing.T) {
		e := newEntry(t)

		err := e.FinishProcessing("bob", now)

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Nil(t, e.FinishedProcessing())
	})

	t.Run("start then finish", func(t *testing.T) {
		e := newEntry(t)

		require.NoError(t, e.StartProcessing("bob", now.Add(time.Minute)))
		assert.Equal(t, entry.Processing, e.Status())
		require.NoError(t, e.FinishProcessing("bob", now.Add(time.Hour)))
		assert.Equal(t, entry.Finished, e.Status())
		assert.Equal(t, now.Add(time.Minute), *e.StartedProcessing())
	})

	t.Run("starting twice is rejected", func(t *testing.T) {
		e := newEntry(t)
		require.NoError(t, e.StartProcessing("bob", now))

		err := e.StartProcessing("bob", now.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, now, *e.StartedProcessing())
	})

	t.Run("finishing twice is rejected", func(t *testing.T) {
		e := newEntry(t)
		require.NoError(t, e.StartProcessing("bob", now))
		require.NoError(t, e.FinishProcessing("bob", now))

		require.ErrorIs(t, e.FinishProcessing("bob", now), errs.ErrInvalidStateTransition)
	})
}

func TestEntry_MoveToZone(t *testing.T) {
	t.Run("moves and stamps", func(t *testing.T) {
		e := newEntry(t)

		moved, err := e.MoveToZone(30, false, "bob", now.Add(time.Minute))

		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, int64(30), e.ZoneID())
		assert.Equal(t, "bob", *e.LastModifiedByUserID())
	})

	t.Run("same zone is a no-op", func(t *testing.T) {
		e := newEntry(t)

		moved, err := e.MoveToZone(20, true, "bob", now)

		require.NoError(t, err)
		assert.False(t, moved)
		assert.Nil(t, e.LastModifiedAt())
	})

	t.Run("entry in final zone cannot move", func(t *testing.T) {
		e := newEntry(t)

		_, err := e.MoveToZone(30, true, "bob", now)

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, int64(20), e.ZoneID())
	})
}

func TestEntry_Edit(t *testing.T) {
	e := newEntry(t)
	q, _ := kernel.NewQuantities(0, 0, 1)

	require.NoError(t, e.Edit(q, "bob", now))
	assert.Equal(t, 1, e.Quantities().Pieces())

	require.NoError(t, e.StartProcessing("bob", now))
	require.NoError(t, e.FinishProcessing("bob", now))
	require.ErrorIs(t, e.Edit(q, "bob", now), errs.ErrInvalidStateTransition)
}

func TestRestoreEntry(t *testing.T) {
	audit, err := kernel.RestoreAudit(kernel.AuditSnapshot{ID: 1, CreatedAt: now, CreatedByUserID: "alice"})
	require.NoError(t, err)

	_, err = entry.RestoreEntry(audit, 1, 1, kernel.Quantities{}, nil, &now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	e, err := entry.RestoreEntry(audit, 1, 1, kernel.Quantities{}, &now, nil)
	require.NoError(t, err)
	assert.Equal(t, entry.Processing, e.Status())
}

func TestStatusFilter(t *testing.T) {
	assert.True(t, entry.StatusFilter(nil).Matches(entry.Finished))
	filter := entry.StatusFilter{entry.Waiting, entry.Processing}
	assert.True(t, filter.Matches(entry.Processing))
	assert.False(t, filter.Matches(entry.Finished))

	s, err := entry.ParseStatus("FINISHED")
	require.NoError(t, err)
	assert.Equal(t, entry.Finished, s)
	_, err = entry.ParseStatus("done")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
