package appwrite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/healthmaster/healthmaster-go/internal/store"
	"github.com/healthmaster/healthmaster-go/pkg/apperror"
)

func (c *Client) CreateFile(ctx context.Context, bucketID, fileID, filename string, content io.Reader) (*store.File, error) {
	const op = "file.create"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("fileId", fileID); err != nil {
		return nil, apperror.New(apperror.Upload, op, bucketID, "failed to build upload form", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, apperror.New(apperror.Upload, op, bucketID, "failed to build upload form", err)
	}
	written, err := io.Copy(part, content)
	if err != nil {
		return nil, apperror.New(apperror.Upload, op, bucketID, "failed to read upload content", err)
	}
	if err := writer.Close(); err != nil {
		return nil, apperror.New(apperror.Upload, op, bucketID, "failed to finalize upload form", err)
	}

	path := fmt.Sprintf("/storage/buckets/%s/files", url.PathEscape(bucketID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(path, nil), &buf)
	if err != nil {
		return nil, apperror.New(apperror.Upload, op, bucketID, "failed to build request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var file store.File
	if err := c.send(req, &file, op, bucketID); err != nil {
		if c.metrics != nil {
			c.metrics.UploadsTotal.WithLabelValues(bucketID, "error").Inc()
		}
		// Partial uploads are not resumed; the caller retries in full.
		return nil, apperror.New(apperror.Upload, op, bucketID, "upload failed", err)
	}

	if c.metrics != nil {
		c.metrics.UploadsTotal.WithLabelValues(bucketID, "ok").Inc()
		c.metrics.UploadBytes.Add(float64(written))
	}
	return &file, nil
}

func (c *Client) FileViewURL(bucketID, fileID string) string {
	q := url.Values{}
	q.Set("project", c.project)
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/view?%s",
		c.endpoint, url.PathEscape(bucketID), url.PathEscape(fileID), q.Encode())
}
