package bulk_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/service/bulk"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures the calls Apply makes so ordering can be asserted.
type recorder struct {
	calls   []string
	deleted []int64
	failOn  int64
}

func (r *recorder) ops() bulk.Ops[domain.Card, domain.CardPatch] {
	return bulk.Ops[domain.Card, domain.CardPatch]{
		ID: func(c domain.Card) int64 { return c.ID },
		Delete: func(ctx context.Context, id int64) error {
			r.calls = append(r.calls, "delete")
			r.deleted = append(r.deleted, id)
			return nil
		},
		Update: func(ctx context.Context, c domain.Card, p domain.CardPatch) (domain.Card, error) {
			r.calls = append(r.calls, "update")
			if c.ID == r.failOn {
				return domain.Card{}, errors.New("write failed")
			}
			if err := c.Apply(p); err != nil {
				return domain.Card{}, err
			}
			return c, nil
		},
		NotFound: store.ErrCardNotFound,
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func instance() []domain.Card {
	return []domain.Card{
		{ID: 1, Task: "one", PositionID: 0, ColumnID: 5},
		{ID: 2, Task: "two", PositionID: 1, ColumnID: 5},
		{ID: 3, Task: "three", PositionID: 2, ColumnID: 5},
	}
}

func TestApply_UpdatesOnlyTargetedFields(t *testing.T) {
	r := &recorder{}
	items := []bulk.Item[domain.CardPatch]{
		{ID: 3, Patch: domain.CardPatch{PositionID: intPtr(0)}},
		{ID: 1, Patch: domain.CardPatch{Task: strPtr("uno")}},
	}

	got, err := bulk.Apply(context.Background(), instance(), items, r.ops())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID, "survivors follow submission order")
	assert.Equal(t, 0, got[0].PositionID)
	assert.Equal(t, "three", got[0].Task)
	assert.Equal(t, "uno", got[1].Task)
	assert.Equal(t, 0, got[1].PositionID)
	assert.Equal(t, int64(5), got[1].ColumnID)
}

func TestApply_DeletesBeforeUpdates(t *testing.T) {
	r := &recorder{}
	items := []bulk.Item[domain.CardPatch]{
		{ID: 2, Patch: domain.CardPatch{Task: strPtr("z")}},
		{ID: 1, Delete: true},
	}

	got, err := bulk.Apply(context.Background(), instance(), items, r.ops())

	require.NoError(t, err)
	assert.Equal(t, []string{"delete", "update"}, r.calls)
	assert.Equal(t, []int64{1}, r.deleted)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, "z", got[0].Task)
}

func TestApply_UnknownIDFailsBeforeAnyWrite(t *testing.T) {
	r := &recorder{}
	items := []bulk.Item[domain.CardPatch]{
		{ID: 1, Delete: true},
		{ID: 99, Patch: domain.CardPatch{Task: strPtr("x")}},
	}

	got, err := bulk.Apply(context.Background(), instance(), items, r.ops())

	assert.Nil(t, got)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, r.calls, "no deletion may be issued when an id is unknown")
}

func TestApply_DeleteOnlyItemMustExist(t *testing.T) {
	r := &recorder{}
	items := []bulk.Item[domain.CardPatch]{{ID: 42, Delete: true}}

	_, err := bulk.Apply(context.Background(), instance(), items, r.ops())

	assert.ErrorIs(t, err, store.ErrCardNotFound)
	assert.Empty(t, r.calls)
}

func TestApply_MissingID(t *testing.T) {
	r := &recorder{}
	items := []bulk.Item[domain.CardPatch]{{Patch: domain.CardPatch{Task: strPtr("x")}}}

	_, err := bulk.Apply(context.Background(), instance(), items, r.ops())

	assert.ErrorIs(t, err, bulk.ErrMissingID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, r.calls)
}

func TestApply_DuplicateIDsMergeLastWins(t *testing.T) {
	r := &recorder{}
	items := []bulk.Item[domain.CardPatch]{
		{ID: 2, Patch: domain.CardPatch{Task: strPtr("first"), PositionID: intPtr(7)}},
		{ID: 1, Patch: domain.CardPatch{Task: strPtr("a")}},
		{ID: 2, Patch: domain.CardPatch{Task: strPtr("second")}},
	}

	got, err := bulk.Apply(context.Background(), instance(), items, r.ops())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, "second", got[0].Task)
	assert.Equal(t, 7, got[0].PositionID)
	assert.Equal(t, []string{"update", "update"}, r.calls, "each id is written once")
}

func TestApply_DuplicateWithAnyDeleteIsDeleted(t *testing.T) {
	r := &recorder{}
	items := []bulk.Item[domain.CardPatch]{
		{ID: 2, Delete: true},
		{ID: 2, Patch: domain.CardPatch{Task: strPtr("ignored")}},
	}

	got, err := bulk.Apply(context.Background(), instance(), items, r.ops())

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, []int64{2}, r.deleted)
	assert.Equal(t, []string{"delete"}, r.calls)
}

func TestApply_UpdateErrorIsReturned(t *testing.T) {
	r := &recorder{failOn: 3}
	items := []bulk.Item[domain.CardPatch]{
		{ID: 1, Patch: domain.CardPatch{Task: strPtr("ok")}},
		{ID: 3, Patch: domain.CardPatch{Task: strPtr("boom")}},
	}

	got, err := bulk.Apply(context.Background(), instance(), items, r.ops())

	assert.Nil(t, got)
	assert.EqualError(t, err, "update id 3: write failed")
}

func TestApply_ValidationErrorFromPatch(t *testing.T) {
	r := &recorder{}
	items := []bulk.Item[domain.CardPatch]{{ID: 1, Patch: domain.CardPatch{Task: strPtr("")}}}

	_, err := bulk.Apply(context.Background(), instance(), items, r.ops())

	assert.ErrorIs(t, err, domain.ErrCardTaskEmpty)
}

func TestApply_EmptyBatch(t *testing.T) {
	r := &recorder{}

	got, err := bulk.Apply(context.Background(), instance(), nil, r.ops())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_WorksForColumns(t *testing.T) {
	columns := []domain.Column{{ID: 10, Name: "Todo", BoardID: 1}, {ID: 11, Name: "Done", PositionID: 1, BoardID: 1}}
	var deleted []int64
	ops := bulk.Ops[domain.Column, domain.ColumnPatch]{
		ID: func(c domain.Column) int64 { return c.ID },
		Delete: func(ctx context.Context, id int64) error {
			deleted = append(deleted, id)
			return nil
		},
		Update: func(ctx context.Context, c domain.Column, p domain.ColumnPatch) (domain.Column, error) {
			if err := c.Apply(p); err != nil {
				return domain.Column{}, err
			}
			return c, nil
		},
		NotFound: store.ErrColumnNotFound,
	}

	got, err := bulk.Apply(context.Background(), columns, []bulk.Item[domain.ColumnPatch]{
		{ID: 10, Delete: true},
		{ID: 11, Patch: domain.ColumnPatch{PositionID: intPtr(0)}},
	}, ops)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, deleted)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].PositionID)
}
