package store

import (
	"context"
	"io"
)

// Store is the remote document store boundary: account lifecycle,
// per-collection document CRUD, and file buckets. The store owns all
// persisted state; implementations must map transport failures into
// pkg/apperror kinds before returning.
//
// All interface definitions live here, consumed by the session and
// resource services. Tests substitute an in-memory implementation or
// point the HTTP client at the appwritetest server.
type Store interface {
	AccountStore
	DocumentStore
	FileStore
}

type AccountStore interface {
	// CreateAccount registers a new account. The id is client-generated
	// and unique.
	CreateAccount(ctx context.Context, id, email, password, name string) (*Account, error)
	// GetAccount resolves the account of the active session.
	GetAccount(ctx context.Context) (*Account, error)
	// CreateSession authenticates and establishes the active session.
	CreateSession(ctx context.Context, email, password string) (*Session, error)
	// DeleteSession tears down a session; "current" addresses the
	// active one.
	DeleteSession(ctx context.Context, sessionID string) error
	// InitialsAvatarURL returns the store-rendered initials avatar URL
	// for a display name. Pure URL construction, no request.
	InitialsAvatarURL(name string) string
}

type DocumentStore interface {
	// CreateDocument persists data as a new document and decodes the
	// stored result (including its assigned ID) into out.
	CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data, out interface{}) error
	GetDocument(ctx context.Context, databaseID, collectionID, documentID string, out interface{}) error
	// ListDocuments decodes the matching documents, in store order for
	// the given queries, into out (a pointer to a slice).
	ListDocuments(ctx context.Context, databaseID, collectionID string, queries []Query, out interface{}) error
	// UpdateDocument applies a partial field set by document ID. No
	// client-side ownership check; access control is the store's.
	UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, partial, out interface{}) error
	DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error
}

type FileStore interface {
	// CreateFile uploads content under a client-generated file ID.
	CreateFile(ctx context.Context, bucketID, fileID, filename string, content io.Reader) (*File, error)
	// FileViewURL returns the publicly resolvable view URL for a
	// stored file. Pure URL construction, no request.
	FileViewURL(bucketID, fileID string) string
}

// Account is a remote store account record.
type Account struct {
	ID    string `json:"$id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is an authenticated session. Secret is only present on the
// create response and is held by the client, never by callers.
type Session struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret,omitempty"`
	Expire string `json:"expire,omitempty"`
}

// File is a stored binary object handle.
type File struct {
	ID           string `json:"$id"`
	BucketID     string `json:"bucketId"`
	Name         string `json:"name"`
	SizeOriginal int64  `json:"sizeOriginal,omitempty"`
}
