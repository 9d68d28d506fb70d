package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"HobbyHop/internal/dto"
	"HobbyHop/internal/model"
	"HobbyHop/internal/repository/mysql"
	"HobbyHop/internal/testutil"

	"github.com/stretchr/testify/require"
)

type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string]string
	err     error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string]string)}
}

func (f *fakeBlobStore) SaveFile(_ context.Context, objectName string, file dto.ImageFile) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	body, err := io.ReadAll(file.Body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectName] = string(body)
	return file.Filename, nil
}

func (f *fakeBlobStore) RemoveFile(_ context.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, objectName)
	return nil
}

func (f *fakeBlobStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

var errBlobDown = errors.New("blob store unavailable")

type testEnv struct {
	store      *mysql.Store
	categoryID uint64
	blobs      *fakeBlobStore
	clubs      *ClubService
	members    *MemberService
	posts      *PostService
	comments   *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, categoryID := testutil.NewStore(t)
	blobs := newFakeBlobStore()
	return &testEnv{
		store:      store,
		categoryID: categoryID,
		blobs:      blobs,
		clubs:      NewClubService(store),
		members:    NewMemberService(store),
		posts:      NewPostService(store, blobs),
		comments:   NewCommentService(store),
	}
}

func (e *testEnv) createClub(t *testing.T, adminID uint64, title string) uint64 {
	t.Helper()
	club, err := e.clubs.CreateClub(context.Background(), adminID, dto.CreateClubReq{
		Title:      title,
		Content:    title + " club",
		CategoryID: e.categoryID,
	})
	require.NoError(t, err)
	return club.ID
}

func (e *testEnv) createPost(t *testing.T, clubID, authorID uint64, title string) uint64 {
	t.Helper()
	post, err := e.posts.CreatePost(context.Background(), clubID, authorID, dto.CreatePostReq{Title: title, Content: "body"})
	require.NoError(t, err)
	return post.ID
}

// promote 直接在库里改角色，测试中用来制造第二个管理员
func (e *testEnv) promote(t *testing.T, clubID, userID uint64) {
	t.Helper()
	res := e.store.Members.DB.Model(&model.ClubMember{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Update("role", model.RoleAdmin)
	require.NoError(t, res.Error)
	require.EqualValues(t, 1, res.RowsAffected)
}

func imageFile(name, body string) dto.ImageFile {
	return dto.ImageFile{
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
	}
}

// clubEvents 按写入顺序返回某社团的发件箱事件
func (e *testEnv) clubEvents(t *testing.T, clubID uint64) []model.ClubOutbox {
	t.Helper()
	var list []model.ClubOutbox
	require.NoError(t, e.store.Outbox.DB.Where("club_id = ?", clubID).Order("id asc").Find(&list).Error)
	return list
}

func strPtr(s string) *string { return &s }

func dtoPage(page, size int) dto.PageRequest {
	return dto.PageRequest{Page: page, Size: size}
}
