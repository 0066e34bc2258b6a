package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/healthmaster/healthmaster-go/internal/store"
	"github.com/healthmaster/healthmaster-go/pkg/apperror"
)

func documentsPath(databaseID, collectionID string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents",
		url.PathEscape(databaseID), url.PathEscape(collectionID))
}

func documentPath(databaseID, collectionID, documentID string) string {
	return documentsPath(databaseID, collectionID) + "/" + url.PathEscape(documentID)
}

func (c *Client) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data, out interface{}) error {
	body := map[string]interface{}{
		"documentId": documentID,
		"data":       data,
	}
	return c.do(ctx, http.MethodPost, documentsPath(databaseID, collectionID), nil, body, out,
		"document.create", collectionID)
}

func (c *Client) GetDocument(ctx context.Context, databaseID, collectionID, documentID string, out interface{}) error {
	return c.do(ctx, http.MethodGet, documentPath(databaseID, collectionID, documentID), nil, nil, out,
		"document.get", collectionID)
}

func (c *Client) ListDocuments(ctx context.Context, databaseID, collectionID string, queries []store.Query, out interface{}) error {
	params := url.Values{}
	for _, q := range queries {
		encoded, err := q.Encode()
		if err != nil {
			return apperror.New(apperror.UnknownRemote, "document.list", collectionID, "failed to encode query", err)
		}
		params.Add("queries[]", encoded)
	}

	var envelope struct {
		Total     int             `json:"total"`
		Documents json.RawMessage `json:"documents"`
	}
	if err := c.do(ctx, http.MethodGet, documentsPath(databaseID, collectionID), params, nil, &envelope,
		"document.list", collectionID); err != nil {
		return err
	}
	if out == nil || len(envelope.Documents) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Documents, out); err != nil {
		return apperror.New(apperror.UnknownRemote, "document.list", collectionID, "failed to decode documents", err)
	}
	return nil
}

func (c *Client) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, partial, out interface{}) error {
	body := map[string]interface{}{
		"data": partial,
	}
	return c.do(ctx, http.MethodPatch, documentPath(databaseID, collectionID, documentID), nil, body, out,
		"document.update", collectionID)
}

func (c *Client) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	return c.do(ctx, http.MethodDelete, documentPath(databaseID, collectionID, documentID), nil, nil, nil,
		"document.delete", collectionID)
}
