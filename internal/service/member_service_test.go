package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberCreate(t *testing.T) {
	store := newTestStore(t)
	members := NewMemberService(store)
	ctx := context.Background()

	t.Run("requires name and phone", func(t *testing.T) {
		var vErr *ValidationError
		_, err := members.Create(ctx, CreateMemberRequest{Phone: "0900000001"})
		assert.ErrorAs(t, err, &vErr)
		_, err = members.Create(ctx, CreateMemberRequest{Name: "An"})
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("assigns placeholder avatar", func(t *testing.T) {
		m, err := members.Create(ctx, CreateMemberRequest{Name: "An", Phone: "0900000001"})
		require.NoError(t, err)
		assert.NotEmpty(t, m.ID)
		assert.Contains(t, m.Avatar, "dicebear.com")
	})

	t.Run("keeps supplied avatar", func(t *testing.T) {
		m, err := members.Create(ctx, CreateMemberRequest{
			Name: "Binh", Phone: "0900000002", Avatar: "https://img.example/me.jpg",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://img.example/me.jpg", m.Avatar)
	})

	t.Run("rejects duplicate phone", func(t *testing.T) {
		var vErr *ValidationError
		_, err := members.Create(ctx, CreateMemberRequest{Name: "An2", Phone: "0900000001"})
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestMemberUpdate(t *testing.T) {
	store := newTestStore(t)
	members := NewMemberService(store)
	ctx := context.Background()

	an, err := members.Create(ctx, CreateMemberRequest{Name: "An", Phone: "0900000001"})
	require.NoError(t, err)
	_, err = members.Create(ctx, CreateMemberRequest{Name: "Binh", Phone: "0900000002"})
	require.NoError(t, err)

	strPtr := func(s string) *string { return &s }

	t.Run("partial update preserves absent fields", func(t *testing.T) {
		updated, err := members.Update(ctx, an.ID, UpdateMemberRequest{Name: strPtr("An Nguyen")})
		require.NoError(t, err)
		assert.Equal(t, "An Nguyen", updated.Name)
		assert.Equal(t, "0900000001", updated.Phone)
		assert.Equal(t, an.Avatar, updated.Avatar)
	})

	t.Run("own phone is not a collision", func(t *testing.T) {
		_, err := members.Update(ctx, an.ID, UpdateMemberRequest{Phone: strPtr("0900000001")})
		assert.NoError(t, err)
	})

	t.Run("rejects another member's phone", func(t *testing.T) {
		var vErr *ValidationError
		_, err := members.Update(ctx, an.ID, UpdateMemberRequest{Phone: strPtr("0900000002")})
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown member", func(t *testing.T) {
		var nfErr *NotFoundError
		_, err := members.Update(ctx, "no-such-member", UpdateMemberRequest{Name: strPtr("X")})
		assert.ErrorAs(t, err, &nfErr)
	})
}

func TestMemberDelete(t *testing.T) {
	store := newTestStore(t)
	members := NewMemberService(store)
	ctx := context.Background()

	m, err := members.Create(ctx, CreateMemberRequest{Name: "An", Phone: "0900000001"})
	require.NoError(t, err)

	require.NoError(t, members.Delete(ctx, m.ID))

	var nfErr *NotFoundError
	assert.ErrorAs(t, members.Delete(ctx, m.ID), &nfErr)
}

func TestTableService(t *testing.T) {
	store := newTestStore(t)
	tables := NewTableService(store)
	ctx := context.Background()

	t.Run("create validates required fields", func(t *testing.T) {
		var vErr *ValidationError
		_, err := tables.Create(ctx, CreateTableRequest{Type: "pool", HourlyRate: 60000})
		assert.ErrorAs(t, err, &vErr)
		_, err = tables.Create(ctx, CreateTableRequest{Name: "T1", HourlyRate: 60000})
		assert.ErrorAs(t, err, &vErr)
		_, err = tables.Create(ctx, CreateTableRequest{Name: "T1", Type: "pool"})
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("create defaults to available", func(t *testing.T) {
		tbl, err := tables.Create(ctx, CreateTableRequest{Name: "T1", Type: "pool", HourlyRate: 60000})
		require.NoError(t, err)
		assert.Equal(t, "available", tbl.Status)
	})

	t.Run("patch merges partial fields", func(t *testing.T) {
		tbl, err := tables.Create(ctx, CreateTableRequest{Name: "T2", Type: "pool", HourlyRate: 60000})
		require.NoError(t, err)

		rate := int64(80000)
		patched, err := tables.Patch(ctx, tbl.ID, PatchTableRequest{HourlyRate: &rate})
		require.NoError(t, err)
		assert.Equal(t, int64(80000), patched.HourlyRate)
		assert.Equal(t, "T2", patched.Name)
		assert.Equal(t, "pool", patched.Type)
	})

	t.Run("patch rejects bad status", func(t *testing.T) {
		tbl, err := tables.Create(ctx, CreateTableRequest{Name: "T3", Type: "carom", HourlyRate: 70000})
		require.NoError(t, err)

		bad := "broken"
		var vErr *ValidationError
		_, err = tables.Patch(ctx, tbl.ID, PatchTableRequest{Status: &bad})
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("patch unknown table", func(t *testing.T) {
		name := "X"
		var nfErr *NotFoundError
		_, err := tables.Patch(ctx, "no-such-table", PatchTableRequest{Name: &name})
		assert.ErrorAs(t, err, &nfErr)
	})
}
