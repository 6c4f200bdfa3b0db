package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
)

func (sb *S3Backend) Read(ctx context.Context, path string) ([]byte, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	key := sb.objectKey(path)
	object, err := sb.client.GetObject(ctx, sb.config.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, backend.NotFound(backend.CleanKey(path))
		}
		return nil, data.Other(fmt.Sprintf("s3 get '%s'", key), err)
	}
	defer object.Close()

	// GetObject is lazy, missing keys only surface on the first read
	content, err := io.ReadAll(object)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, backend.NotFound(backend.CleanKey(path))
		}
		return nil, data.Other(fmt.Sprintf("s3 read '%s'", key), err)
	}

	return content, nil
}

func (sb *S3Backend) Write(ctx context.Context, path string, content []byte) error {
	if backend.CleanKey(path) == backend.RootPath {
		return fmt.Errorf("%w: cannot write to backend root", data.ErrInvalidOperation)
	}

	sb.mu.Lock()
	defer sb.mu.Unlock()

	key := sb.objectKey(path)
	_, err := sb.client.PutObject(ctx, sb.config.Bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return data.Other(fmt.Sprintf("s3 put '%s'", key), err)
	}

	return nil
}

func (sb *S3Backend) Exists(ctx context.Context, path string) (bool, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	if backend.CleanKey(path) == backend.RootPath {
		return true, nil
	}

	key := sb.objectKey(path)
	if _, err := sb.client.StatObject(ctx, sb.config.Bucket, key, minio.StatObjectOptions{}); err == nil {
		return true, nil
	} else if !isNoSuchKey(err) {
		return false, data.Other(fmt.Sprintf("s3 stat '%s'", key), err)
	}

	// Virtual directory, cancel stops the listing goroutine once we return early
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for object := range sb.client.ListObjects(listCtx, sb.config.Bucket, minio.ListObjectsOptions{
		Prefix:  key + "/",
		MaxKeys: 1,
	}) {
		if object.Err != nil {
			return false, data.Other(fmt.Sprintf("s3 list '%s/'", key), object.Err)
		}
		return true, nil
	}

	return false, nil
}

func (sb *S3Backend) Remove(ctx context.Context, path string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	key := sb.objectKey(path)
	// RemoveObject succeeds for missing keys, so check first
	if _, err := sb.client.StatObject(ctx, sb.config.Bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return backend.NotFound(backend.CleanKey(path))
		}
		return data.Other(fmt.Sprintf("s3 stat '%s'", key), err)
	}

	if err := sb.client.RemoveObject(ctx, sb.config.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return data.Other(fmt.Sprintf("s3 remove '%s'", key), err)
	}

	return nil
}

func (sb *S3Backend) ListDir(ctx context.Context, path string) ([]string, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	rel := backend.CleanKey(path)
	collector := backend.NewChildCollector(rel)

	prefix := sb.objectKey(collector.Prefix())
	if rel != backend.RootPath {
		prefix += "/"
	}

	for object := range sb.client.ListObjects(ctx, sb.config.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if object.Err != nil {
			return nil, data.Other(fmt.Sprintf("s3 list '%s'", prefix), object.Err)
		}
		collector.Add(sb.relativeKey(object.Key))
	}

	isEntry := false
	if rel != backend.RootPath {
		_, err := sb.client.StatObject(ctx, sb.config.Bucket, sb.objectKey(rel), minio.StatObjectOptions{})
		isEntry = err == nil
	}

	return collector.Result(rel, isEntry)
}
