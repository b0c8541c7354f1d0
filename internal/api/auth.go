package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// User учетная запись пользователя
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Credentials данные формы входа и регистрации
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userEnvelope сервер отвечает либо объектом пользователя, либо {data: user}
type userEnvelope struct {
	User
	Data *User `json:"data"`
}

func (e userEnvelope) user() (*User, error) {
	u := e.User
	if e.Data != nil {
		u = *e.Data
	}
	if u.ID == "" {
		return nil, errors.New("response does not contain a user id")
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*User, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

func (c *Client) Register(ctx context.Context, creds Credentials) (*User, error) {
	return c.authenticate(ctx, "/auth/register", creds)
}

// Me возвращает текущего пользователя по сохраненному id
func (c *Client) Me(ctx context.Context) (*User, error) {
	var env userEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &env); err != nil {
		return nil, err
	}
	return env.user()
}

func (c *Client) authenticate(ctx context.Context, path string, creds Credentials) (*User, error) {
	if creds.Password == "" || (creds.Username == "" && creds.Email == "") {
		return nil, fmt.Errorf("username or email and password are required")
	}
	var env userEnvelope
	if err := c.doJSON(ctx, http.MethodPost, path, creds, &env); err != nil {
		return nil, err
	}
	return env.user()
}
