package appwritetest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) lookupBucket(c *gin.Context) (map[string]*file, bool) {
	bucket, exists := s.buckets[c.Param("bucket")]
	if !exists {
		fail(c, http.StatusNotFound, "storage_bucket_not_found", "bucket not found")
		return nil, false
	}
	return bucket, true
}

func (s *Server) handleCreateFile(c *gin.Context) {
	if !s.requireSession(c) {
		return
	}
	bucket, ok := s.lookupBucket(c)
	if !ok {
		return
	}

	fileID := c.PostForm("fileId")
	if fileID == "" || fileID == "unique()" {
		fileID = uuid.NewString()
	}

	header, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "general_argument_invalid", "file part is required")
		return
	}
	src, err := header.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "general_argument_invalid", "unreadable file part")
		return
	}
	defer src.Close()
	content, err := io.ReadAll(src)
	if err != nil {
		fail(c, http.StatusBadRequest, "general_argument_invalid", "unreadable file part")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := bucket[fileID]; exists {
		fail(c, http.StatusConflict, "storage_file_already_exists", "file with the requested ID already exists")
		return
	}
	bucket[fileID] = &file{id: fileID, name: header.Filename, content: content}

	c.JSON(http.StatusCreated, gin.H{
		"$id":          fileID,
		"bucketId":     c.Param("bucket"),
		"name":         header.Filename,
		"sizeOriginal": len(content),
	})
}

func (s *Server) handleFileView(c *gin.Context) {
	bucket, ok := s.lookupBucket(c)
	if !ok {
		return
	}

	s.mu.Lock()
	f, exists := bucket[c.Param("id")]
	s.mu.Unlock()
	if !exists {
		fail(c, http.StatusNotFound, "storage_file_not_found", "file not found")
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", f.content)
}
