package appwritetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) lookupCollection(c *gin.Context) (*collection, bool) {
	if c.Param("db") != DatabaseID {
		fail(c, http.StatusNotFound, "database_not_found", "database not found")
		return nil, false
	}
	col, exists := s.collections[c.Param("col")]
	if !exists {
		fail(c, http.StatusNotFound, "collection_not_found", "collection not found")
		return nil, false
	}
	return col, true
}

func (s *Server) requireSession(c *gin.Context) bool {
	if _, ok := s.currentAccount(c); !ok {
		fail(c, http.StatusUnauthorized, "general_unauthorized_scope", "missing or invalid session")
		return false
	}
	return true
}

type createDocumentRequest struct {
	DocumentID string                 `json:"documentId"`
	Data       map[string]interface{} `json:"data"`
}

func (s *Server) handleCreateDocument(c *gin.Context) {
	if !s.requireSession(c) {
		return
	}
	col, ok := s.lookupCollection(c)
	if !ok {
		return
	}

	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Data == nil {
		fail(c, http.StatusBadRequest, "general_argument_invalid", "document data must be an object")
		return
	}
	if req.DocumentID == "" || req.DocumentID == "unique()" {
		req.DocumentID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := col.docs[req.DocumentID]; exists {
		fail(c, http.StatusConflict, "document_already_exists", "document with the requested ID already exists")
		return
	}

	now := time.Now().UTC()
	doc := &document{
		id:      req.DocumentID,
		seq:     col.nextSeq,
		created: now,
		updated: now,
		data:    copyData(req.Data),
	}
	col.nextSeq++
	col.docs[doc.id] = doc

	c.JSON(http.StatusCreated, s.render(c, doc))
}

func (s *Server) handleGetDocument(c *gin.Context) {
	if !s.requireSession(c) {
		return
	}
	col, ok := s.lookupCollection(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, exists := col.docs[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "document_not_found", "document not found")
		return
	}
	c.JSON(http.StatusOK, s.render(c, doc))
}

type updateDocumentRequest struct {
	Data map[string]interface{} `json:"data"`
}

func (s *Server) handleUpdateDocument(c *gin.Context) {
	if !s.requireSession(c) {
		return
	}
	col, ok := s.lookupCollection(c)
	if !ok {
		return
	}

	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Data == nil {
		fail(c, http.StatusBadRequest, "general_argument_invalid", "document data must be an object")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, exists := col.docs[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "document_not_found", "document not found")
		return
	}
	for key, value := range req.Data {
		doc.data[key] = value
	}
	doc.updated = time.Now().UTC()
	c.JSON(http.StatusOK, s.render(c, doc))
}

func (s *Server) handleDeleteDocument(c *gin.Context) {
	if !s.requireSession(c) {
		return
	}
	col, ok := s.lookupCollection(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := col.docs[c.Param("id")]; !exists {
		fail(c, http.StatusNotFound, "document_not_found", "document not found")
		return
	}
	delete(col.docs, c.Param("id"))
	c.Status(http.StatusNoContent)
}

type listQuery struct {
	Method    string        `json:"method"`
	Attribute string        `json:"attribute"`
	Values    []interface{} `json:"values"`
}

func (s *Server) handleListDocuments(c *gin.Context) {
	if !s.requireSession(c) {
		return
	}
	col, ok := s.lookupCollection(c)
	if !ok {
		return
	}

	var queries []listQuery
	for _, raw := range c.QueryArray("queries[]") {
		var q listQuery
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			fail(c, http.StatusBadRequest, "general_query_invalid", "invalid query")
			return
		}
		queries = append(queries, q)
	}

	// Filtering, ordering, and rendering all read doc.data, which a
	// concurrent update mutates; the lock is held until the response is
	// fully rendered.
	s.mu.Lock()
	docs := make([]*document, 0, len(col.docs))
	for _, doc := range col.docs {
		docs = append(docs, doc)
	}

	// Base order is insertion order so equal sort keys keep a stable,
	// deterministic tie order.
	sort.Slice(docs, func(i, j int) bool { return docs[i].seq < docs[j].seq })

	docs = applyFilters(docs, queries)
	applyOrdering(docs, queries)
	docs = applyLimit(docs, queries)

	rendered := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		rendered = append(rendered, s.render(c, doc))
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"total":     len(rendered),
		"documents": rendered,
	})
}

func applyFilters(docs []*document, queries []listQuery) []*document {
	for _, q := range queries {
		if q.Method != "equal" || len(q.Values) == 0 {
			continue
		}
		filtered := docs[:0:0]
		for _, doc := range docs {
			if attrString(doc.data[q.Attribute]) == attrString(q.Values[0]) {
				filtered = append(filtered, doc)
			}
		}
		docs = filtered
	}
	return docs
}

func applyOrdering(docs []*document, queries []listQuery) {
	var orders []listQuery
	for _, q := range queries {
		if q.Method == "orderAsc" || q.Method == "orderDesc" {
			orders = append(orders, q)
		}
	}
	if len(orders) == 0 {
		return
	}

	sort.SliceStable(docs, func(i, j int) bool {
		for _, q := range orders {
			a := attrString(docs[i].data[q.Attribute])
			b := attrString(docs[j].data[q.Attribute])
			if a == b {
				continue
			}
			if q.Method == "orderDesc" {
				return a > b
			}
			return a < b
		}
		return false
	})
}

func applyLimit(docs []*document, queries []listQuery) []*document {
	for _, q := range queries {
		if q.Method != "limit" || len(q.Values) == 0 {
			continue
		}
		if n, ok := q.Values[0].(float64); ok && int(n) < len(docs) {
			docs = docs[:int(n)]
		}
	}
	return docs
}

// attrString normalizes attribute values for comparison. ISO-8601
// instants compare correctly as strings; numbers are offset so
// negative values order correctly too (magnitudes beyond 1e9 are out
// of range for any stored attribute).
func attrString(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return fmt.Sprintf("%021.6f", value+1e9)
	default:
		return fmt.Sprint(value)
	}
}

func (s *Server) render(c *gin.Context, doc *document) map[string]interface{} {
	out := make(map[string]interface{}, len(doc.data)+5)
	for key, value := range doc.data {
		out[key] = value
	}
	out["$id"] = doc.id
	out["$createdAt"] = doc.created.Format(time.RFC3339Nano)
	out["$updatedAt"] = doc.updated.Format(time.RFC3339Nano)
	out["$databaseId"] = c.Param("db")
	out["$collectionId"] = c.Param("col")
	return out
}

func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for key, value := range data {
		out[key] = value
	}
	return out
}
