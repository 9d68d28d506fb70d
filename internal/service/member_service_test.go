package service

import (
	"context"
	"sync"
	"testing"

	"HobbyHop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		role     model.Role
		required model.Role
		wantErr  error
	}{
		{model.RoleAdmin, model.RoleAdmin, nil},
		{model.RoleAdmin, model.RoleMember, nil},
		{model.RoleMember, model.RoleMember, nil},
		{model.RoleMember, model.RoleAdmin, ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(string(tc.role)+"->"+string(tc.required), func(t *testing.T) {
			err := Authorize(&model.ClubMember{Role: tc.role}, tc.required)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestJoin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clubID := env.createClub(t, 1, "Hiking")

	member, err := env.members.Join(ctx, clubID, 2)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, member.Role)

	ok, err := env.members.IsMember(ctx, clubID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = env.members.Join(ctx, clubID, 2)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	// 重复加入不会改变已有角色
	_, err = env.members.Join(ctx, clubID, 1)
	assert.ErrorIs(t, err, ErrAlreadyMember)
	admin, err := env.members.FindByClubAndUser(ctx, clubID, 1)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	_, err = env.members.Join(ctx, 999, 2)
	assert.ErrorIs(t, err, ErrClubNotFound)
}

func TestLeave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clubID := env.createClub(t, 1, "Hiking")

	_, err := env.members.Join(ctx, clubID, 2)
	require.NoError(t, err)
	require.NoError(t, env.members.Leave(ctx, clubID, 2))

	_, err = env.members.FindByClubAndUser(ctx, clubID, 2)
	assert.ErrorIs(t, err, ErrMembershipNotFound)

	assert.ErrorIs(t, env.members.Leave(ctx, clubID, 2), ErrMembershipNotFound)
	assert.ErrorIs(t, env.members.Leave(ctx, clubID, 1), ErrLastAdmin)

	// 有第二个管理员后原管理员可以退出
	_, err = env.members.Join(ctx, clubID, 3)
	require.NoError(t, err)
	env.promote(t, clubID, 3)
	assert.NoError(t, env.members.Leave(ctx, clubID, 1))
}

// 两个管理员同时退出，只能有一个成功
func TestLeaveConcurrentAdmins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clubID := env.createClub(t, 1, "Hiking")
	_, err := env.members.Join(ctx, clubID, 2)
	require.NoError(t, err)
	env.promote(t, clubID, 2)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, userID := range []uint64{1, 2} {
		wg.Add(1)
		go func(i int, userID uint64) {
			defer wg.Done()
			errs[i] = env.members.Leave(ctx, clubID, userID)
		}(i, userID)
	}
	wg.Wait()

	var failed int
	for _, err := range errs {
		if err != nil {
			failed++
			assert.ErrorIs(t, err, ErrLastAdmin)
		}
	}
	assert.Equal(t, 1, failed)

	admins, err := env.store.Members.LockByRole(ctx, clubID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestListMembers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	hiking := env.createClub(t, 1, "Hiking")
	chess := env.createClub(t, 2, "Chess")

	for _, uid := range []uint64{2, 3, 4} {
		_, err := env.members.Join(ctx, hiking, uid)
		require.NoError(t, err)
	}

	page, err := env.members.ListByClub(ctx, hiking, dtoPage(1, 2))
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
	assert.Len(t, page.List, 2)

	mine, err := env.members.ListByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	clubIDs := []uint64{mine[0].ClubID, mine[1].ClubID}
	assert.ElementsMatch(t, []uint64{hiking, chess}, clubIDs)

	_, err = env.members.ListByClub(ctx, 999, dtoPage(1, 10))
	assert.ErrorIs(t, err, ErrClubNotFound)
}
