package dto

import (
	"testing"

	"HobbyHop/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNewPostRespImagePair(t *testing.T) {
	post := &model.Post{ID: 1, ClubID: 2, AuthorID: 3, Title: "trail"}
	resp := NewPostResp(post)
	assert.Nil(t, resp.OriginalFilename)
	assert.Nil(t, resp.StoredFilename)

	post.Image = model.NewImageRef("peak.png", "abc_peak.png")
	resp = NewPostResp(post)
	if assert.NotNil(t, resp.OriginalFilename) && assert.NotNil(t, resp.StoredFilename) {
		assert.Equal(t, "peak.png", *resp.OriginalFilename)
		assert.Equal(t, "abc_peak.png", *resp.StoredFilename)
	}

	// 只有一半的记录按没有图片处理
	stored := "abc_peak.png"
	post.Image = model.ImageRef{StoredFilename: &stored}
	resp = NewPostResp(post)
	assert.Nil(t, resp.OriginalFilename)
	assert.Nil(t, resp.StoredFilename)
}
