package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"HobbyHop/internal/dto"
	"HobbyHop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 完整流程：A 创建社团，B 未加入时发帖失败，加入后发帖成功；
// 作者不是 ADMIN、ADMIN 不是作者，两种情况都不能修改帖子
func TestPostAuthorizationScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	const userA, userB = uint64(1), uint64(2)

	clubID := env.createClub(t, userA, "Hiking")

	_, err := env.posts.CreatePost(ctx, clubID, userB, dto.CreatePostReq{Title: "hello"})
	assert.ErrorIs(t, err, ErrMembershipNotFound)

	_, err = env.members.Join(ctx, clubID, userB)
	require.NoError(t, err)

	post, err := env.posts.CreatePost(ctx, clubID, userB, dto.CreatePostReq{Title: "hello", Content: "first"})
	require.NoError(t, err)
	assert.Equal(t, userB, post.AuthorID)
	assert.Equal(t, clubID, post.ClubID)

	_, err = env.posts.ModifyPost(ctx, clubID, post.ID, userA, dto.ModifyPostReq{Title: strPtr("edited")}, nil)
	assert.ErrorIs(t, err, ErrNotPostOwner)

	_, err = env.posts.ModifyPost(ctx, clubID, post.ID, userB, dto.ModifyPostReq{Title: strPtr("edited")}, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, env.posts.DeletePost(ctx, clubID, post.ID, userA), ErrNotPostOwner)
	assert.ErrorIs(t, env.posts.DeletePost(ctx, clubID, post.ID, userB), ErrForbidden)

	got, err := env.posts.GetPost(ctx, clubID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Title)

	// 作者同时是 ADMIN 时可以修改和删除
	env.promote(t, clubID, userB)
	got, err = env.posts.ModifyPost(ctx, clubID, post.ID, userB, dto.ModifyPostReq{Title: strPtr("edited")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title)
	assert.Equal(t, "first", got.Content)

	require.NoError(t, env.posts.DeletePost(ctx, clubID, post.ID, userB))
	_, err = env.posts.GetPost(ctx, clubID, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestModifyPostCheckOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hiking := env.createClub(t, 1, "Hiking")
	chess := env.createClub(t, 1, "Chess")
	postID := env.createPost(t, hiking, 1, "trail")

	// 非成员：即使帖子不存在也先报成员关系错误
	_, err := env.posts.ModifyPost(ctx, hiking, 12345, 9, dto.ModifyPostReq{}, nil)
	assert.ErrorIs(t, err, ErrMembershipNotFound)

	_, err = env.posts.ModifyPost(ctx, 999, postID, 1, dto.ModifyPostReq{}, nil)
	assert.ErrorIs(t, err, ErrClubNotFound)

	_, err = env.posts.ModifyPost(ctx, hiking, 12345, 1, dto.ModifyPostReq{}, nil)
	assert.ErrorIs(t, err, ErrPostNotFound)

	// 帖子属于别的社团
	_, err = env.posts.ModifyPost(ctx, chess, postID, 1, dto.ModifyPostReq{Title: strPtr("x")}, nil)
	assert.ErrorIs(t, err, ErrPostClubMismatch)
	_, err = env.posts.GetPost(ctx, chess, postID)
	assert.ErrorIs(t, err, ErrPostClubMismatch)
	assert.ErrorIs(t, env.posts.DeletePost(ctx, chess, postID, 1), ErrPostClubMismatch)

	_, err = env.posts.ModifyPost(ctx, hiking, postID, 1, dto.ModifyPostReq{Title: strPtr(" ")}, nil)
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestPostImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clubID := env.createClub(t, 1, "Hiking")
	postID := env.createPost(t, clubID, 1, "trail")

	post, err := env.posts.GetPost(ctx, clubID, postID)
	require.NoError(t, err)
	assert.Nil(t, post.OriginalFilename)
	assert.Nil(t, post.StoredFilename)

	post, err = env.posts.UploadImage(ctx, clubID, postID, 1, imageFile("peak.png", "png-bytes"))
	require.NoError(t, err)
	require.NotNil(t, post.OriginalFilename)
	require.NotNil(t, post.StoredFilename)
	assert.Equal(t, "peak.png", *post.OriginalFilename)
	assert.True(t, strings.HasSuffix(*post.StoredFilename, "_peak.png"))
	assert.Equal(t, "png-bytes", env.blobs.objects[*post.StoredFilename])

	// 修改时附带图片会同时替换两个文件名
	img := imageFile("lake.png", "lake")
	post, err = env.posts.ModifyPost(ctx, clubID, postID, 1, dto.ModifyPostReq{Content: strPtr("updated")}, &img)
	require.NoError(t, err)
	assert.Equal(t, "lake.png", *post.OriginalFilename)
	assert.True(t, strings.HasSuffix(*post.StoredFilename, "_lake.png"))
	assert.Equal(t, "updated", post.Content)

	_, err = env.posts.UploadImage(ctx, clubID, postID, 1, dto.ImageFile{Filename: ""})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestPostImageBlobFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clubID := env.createClub(t, 1, "Hiking")
	postID := env.createPost(t, clubID, 1, "trail")

	env.blobs.err = errBlobDown
	img := imageFile("peak.png", "x")
	_, err := env.posts.ModifyPost(ctx, clubID, postID, 1, dto.ModifyPostReq{Title: strPtr("edited")}, &img)
	assert.ErrorIs(t, err, errBlobDown)

	post, err := env.posts.GetPost(ctx, clubID, postID)
	require.NoError(t, err)
	assert.Equal(t, "trail", post.Title)
	assert.Nil(t, post.OriginalFilename)
	assert.Nil(t, post.StoredFilename)
}

// UploadImage 与 ModifyPost 走同一条校验链，任何一步失败都不会上传对象
func TestUploadImageCheckOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	const admin, member = uint64(1), uint64(2)

	hiking := env.createClub(t, admin, "Hiking")
	chess := env.createClub(t, admin, "Chess")
	_, err := env.members.Join(ctx, hiking, member)
	require.NoError(t, err)
	adminPost := env.createPost(t, hiking, admin, "trail")
	memberPost := env.createPost(t, hiking, member, "camp")

	_, err = env.posts.UploadImage(ctx, hiking, adminPost, 9, imageFile("a.png", "x"))
	assert.ErrorIs(t, err, ErrMembershipNotFound)

	// 作者但只是 MEMBER
	_, err = env.posts.UploadImage(ctx, hiking, memberPost, member, imageFile("b.png", "x"))
	assert.ErrorIs(t, err, ErrForbidden)

	// ADMIN 但不是作者
	_, err = env.posts.UploadImage(ctx, hiking, memberPost, admin, imageFile("c.png", "x"))
	assert.ErrorIs(t, err, ErrNotPostOwner)

	_, err = env.posts.UploadImage(ctx, chess, adminPost, admin, imageFile("d.png", "x"))
	assert.ErrorIs(t, err, ErrPostClubMismatch)

	assert.Zero(t, env.blobs.count())
	for _, id := range []uint64{adminPost, memberPost} {
		post, err := env.posts.GetPost(ctx, hiking, id)
		require.NoError(t, err)
		assert.Nil(t, post.StoredFilename)
	}
}

// 对象上传成功但写库失败时，上传的对象要被删掉
func TestUploadImageRemovesBlobOnFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clubID := env.createClub(t, 1, "Hiking")
	postID := env.createPost(t, clubID, 1, "trail")

	errWrite := errors.New("disk full")
	require.NoError(t, env.store.Posts.DB.Callback().Update().Before("gorm:update").
		Register("test:fail_post_update", func(tx *gorm.DB) {
			// 只让写图片文件名的 UPDATE 失败
			if fields, ok := tx.Statement.Dest.(map[string]any); ok {
				if _, ok := fields["stored_filename"]; ok {
					_ = tx.AddError(errWrite)
				}
			}
		}))

	_, err := env.posts.UploadImage(ctx, clubID, postID, 1, imageFile("peak.png", "png-bytes"))
	assert.ErrorIs(t, err, errWrite)
	assert.Zero(t, env.blobs.count())

	img := imageFile("lake.png", "lake")
	_, err = env.posts.ModifyPost(ctx, clubID, postID, 1, dto.ModifyPostReq{Title: strPtr("edited")}, &img)
	assert.ErrorIs(t, err, errWrite)
	assert.Zero(t, env.blobs.count())

	post, err := env.posts.GetPost(ctx, clubID, postID)
	require.NoError(t, err)
	assert.Equal(t, "trail", post.Title)
	assert.Nil(t, post.OriginalFilename)
	assert.Nil(t, post.StoredFilename)
}

func TestDeletePostRemovesComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clubID := env.createClub(t, 1, "Hiking")
	postID := env.createPost(t, clubID, 1, "trail")

	for _, text := range []string{"a", "b"} {
		_, err := env.comments.CreateComment(ctx, clubID, postID, 1, dto.CreateCommentReq{Content: text})
		require.NoError(t, err)
	}
	page, err := env.comments.ListComments(ctx, clubID, postID, dto.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	require.NoError(t, env.posts.DeletePost(ctx, clubID, postID, 1))

	var alive int64
	require.NoError(t, env.store.Comments.DB.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&alive).Error)
	assert.Zero(t, alive)
	var kept int64
	require.NoError(t, env.store.Comments.DB.Unscoped().Model(&model.Comment{}).Where("post_id = ?", postID).Count(&kept).Error)
	assert.EqualValues(t, 2, kept)

	events := env.clubEvents(t, clubID)
	assert.Equal(t, model.EventPostDeleted, events[len(events)-1].EventType)
}

func TestListPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clubID := env.createClub(t, 1, "Hiking")
	otherID := env.createClub(t, 1, "Chess")

	var ids []uint64
	for _, title := range []string{"p1", "p2", "p3", "p4", "p5"} {
		ids = append(ids, env.createPost(t, clubID, 1, title))
	}
	env.createPost(t, otherID, 1, "opening p1")

	page, err := env.posts.ListPosts(ctx, clubID, dto.PageRequest{Page: 2, Size: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	require.Len(t, page.List, 2)
	assert.Equal(t, ids[2], page.List[0].ID)

	// 游标分页按 id 倒序遍历完所有帖子
	var seen []uint64
	var cursor uint64
	for {
		resp, err := env.posts.ListPostsCursor(ctx, clubID, cursor, 2)
		require.NoError(t, err)
		for _, p := range resp.List {
			seen = append(seen, p.ID)
		}
		if resp.NextCursor == 0 {
			break
		}
		cursor = resp.NextCursor
	}
	assert.Equal(t, []uint64{ids[4], ids[3], ids[2], ids[1], ids[0]}, seen)

	found, err := env.posts.SearchPosts(ctx, dto.PageRequest{}, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, found.Total)

	_, err = env.posts.ListPosts(ctx, 999, dto.PageRequest{})
	assert.ErrorIs(t, err, ErrClubNotFound)
}

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clubID := env.createClub(t, 1, "Hiking")
	otherID := env.createClub(t, 1, "Chess")
	postID := env.createPost(t, clubID, 1, "trail")

	_, err := env.comments.CreateComment(ctx, clubID, postID, 2, dto.CreateCommentReq{Content: "hi"})
	assert.ErrorIs(t, err, ErrMembershipNotFound)

	_, err = env.comments.CreateComment(ctx, otherID, postID, 1, dto.CreateCommentReq{Content: "hi"})
	assert.ErrorIs(t, err, ErrPostClubMismatch)

	_, err = env.comments.CreateComment(ctx, clubID, postID, 1, dto.CreateCommentReq{Content: " "})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = env.members.Join(ctx, clubID, 2)
	require.NoError(t, err)
	c, err := env.comments.CreateComment(ctx, clubID, postID, 2, dto.CreateCommentReq{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c.AuthorID)
	assert.Equal(t, postID, c.PostID)
}
