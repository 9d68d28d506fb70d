package minio

import (
	"context"
	"fmt"
	"time"

	"HobbyHop/internal/config"
	"HobbyHop/internal/dto"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageStore 帖子图片的对象存储
type ImageStore struct {
	cli    *minio.Client
	bucket string
}

func New(conf config.MinIO) (*ImageStore, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio.New: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, conf.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio.BucketExists: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, conf.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio.MakeBucket: %w", err)
		}
	}

	return &ImageStore{cli: client, bucket: conf.Bucket}, nil
}

// SaveFile 以 objectName 保存图片，返回原始文件名
func (s *ImageStore) SaveFile(ctx context.Context, objectName string, file dto.ImageFile) (string, error) {
	_, err := s.cli.PutObject(ctx, s.bucket, objectName, file.Body, file.Size, minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio.PutObject: %w", err)
	}
	return file.Filename, nil
}

// RemoveFile 删除已上传的对象，用于帖子更新失败后的清理
func (s *ImageStore) RemoveFile(ctx context.Context, objectName string) error {
	if err := s.cli.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio.RemoveObject: %w", err)
	}
	return nil
}
