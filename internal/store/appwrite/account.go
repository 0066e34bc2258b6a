package appwrite

import (
	"context"
	"net/http"
	"net/url"

	"github.com/healthmaster/healthmaster-go/internal/store"
)

func (c *Client) CreateAccount(ctx context.Context, id, email, password, name string) (*store.Account, error) {
	body := map[string]string{
		"userId":   id,
		"email":    email,
		"password": password,
		"name":     name,
	}
	var account store.Account
	if err := c.do(ctx, http.MethodPost, "/account", nil, body, &account, "account.create", "account"); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) GetAccount(ctx context.Context) (*store.Account, error) {
	var account store.Account
	if err := c.do(ctx, http.MethodGet, "/account", nil, nil, &account, "account.get", "account"); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) CreateSession(ctx context.Context, email, password string) (*store.Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var session store.Session
	if err := c.do(ctx, http.MethodPost, "/account/sessions/email", nil, body, &session, "session.create", "session"); err != nil {
		return nil, err
	}
	c.setSession(session.Secret)
	return &session, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if err := c.do(ctx, http.MethodDelete, "/account/sessions/"+url.PathEscape(sessionID), nil, nil, nil, "session.delete", "session"); err != nil {
		return err
	}
	if sessionID == "current" {
		c.setSession("")
	}
	return nil
}

func (c *Client) InitialsAvatarURL(name string) string {
	q := url.Values{}
	q.Set("name", name)
	q.Set("project", c.project)
	return c.endpoint + "/avatars/initials?" + q.Encode()
}
