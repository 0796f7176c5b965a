package rest

import (
	"context"
	"net/http"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
)

type UsersClient struct {
	req ports.Requester
}

func NewUsersClient(req ports.Requester) *UsersClient {
	return &UsersClient{req: req}
}

// NewUser carries the fields required to create an employee account.
type NewUser struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"userRole"`
}

type userList struct {
	Data       []domain.UserRecord `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

func (c *UsersClient) List(ctx context.Context, opts ListOptions) ([]domain.UserRecord, Pagination, error) {
	var out userList
	if err := c.req.Do(ctx, http.MethodGet, "/api/users", opts.values(), nil, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out.Data, out.Pagination, nil
}

// ActiveHandlers returns users eligible to handle orders: every active
// non-customer account.
func (c *UsersClient) ActiveHandlers(ctx context.Context) ([]domain.UserRecord, error) {
	users, _, err := c.List(ctx, ListOptions{Limit: 100})
	if err != nil {
		return nil, err
	}
	handlers := users[:0]
	for _, u := range users {
		if u.Status == "active" && domain.KnownRole(u.Role) {
			handlers = append(handlers, u)
		}
	}
	return handlers, nil
}

func (c *UsersClient) Create(ctx context.Context, user NewUser) (*domain.UserRecord, error) {
	var out struct {
		Data domain.UserRecord `json:"data"`
	}
	if err := c.req.Do(ctx, http.MethodPost, "/api/users", nil, user, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *UsersClient) Update(ctx context.Context, id string, fields map[string]any) error {
	return c.req.Do(ctx, http.MethodPut, "/api/users/"+id, nil, fields, nil)
}

func (c *UsersClient) Delete(ctx context.Context, id string) error {
	return c.req.Do(ctx, http.MethodDelete, "/api/users/"+id, nil, nil, nil)
}
