package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	casdoor "github.com/casdoor/casdoor-go-client"
	"github.com/casdoor/casdoor-go-client/models"
)

// UserService provides access to the user actions of one organization.
type UserService struct {
	Client       *casdoor.Client
	Organization string
}

// NewUserService creates a UserService for the client's configured organization.
func NewUserService(c *casdoor.Client) *UserService {
	return &UserService{Client: c, Organization: c.Config().OrganizationName}
}

type userQuery struct {
	ID      string `url:"id,omitempty"`
	Owner   string `url:"owner,omitempty"`
	Email   string `url:"email,omitempty"`
	Phone   string `url:"phone,omitempty"`
	Columns string `url:"columns,omitempty"`
}

// GetUser fetches the user called name.
func (s *UserService) GetUser(ctx context.Context, name string) (*models.User, error) {
	return s.getUser(ctx, userQuery{ID: s.Organization + "/" + name})
}

// GetUserByEmail fetches the user owning email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, userQuery{Owner: s.Organization, Email: email})
}

// GetUserByPhone fetches the user owning phone.
func (s *UserService) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	return s.getUser(ctx, userQuery{Owner: s.Organization, Phone: phone})
}

func (s *UserService) getUser(ctx context.Context, q userQuery) (*models.User, error) {
	p, err := params(q)
	if err != nil {
		return nil, err
	}

	resp, err := casdoor.Get[*models.User, any](ctx, s.Client, "get-user", p)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, ErrNotFound
	}
	return resp.Data, nil
}

// GetUsers lists every user of the organization.
func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	p, err := params(userQuery{Owner: s.Organization})
	if err != nil {
		return nil, err
	}

	resp, err := casdoor.Get[[]models.User, any](ctx, s.Client, "get-users", p)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AddUser creates user. It reports whether Casdoor changed anything.
func (s *UserService) AddUser(ctx context.Context, user models.User) (bool, error) {
	return s.modifyUser(ctx, "add-user", user, nil)
}

// UpdateUser saves user. When columns is not empty only those fields are
// written.
func (s *UserService) UpdateUser(ctx context.Context, user models.User, columns ...string) (bool, error) {
	return s.modifyUser(ctx, "update-user", user, columns)
}

// DeleteUser removes user.
func (s *UserService) DeleteUser(ctx context.Context, user models.User) (bool, error) {
	return s.modifyUser(ctx, "delete-user", user, nil)
}

func (s *UserService) modifyUser(ctx context.Context, action string, user models.User, columns []string) (bool, error) {
	if user.Owner == "" {
		user.Owner = s.Organization
	}

	p, err := params(userQuery{ID: user.FullName(), Columns: strings.Join(columns, ",")})
	if err != nil {
		return false, err
	}

	body, err := json.Marshal(user)
	if err != nil {
		return false, fmt.Errorf("could not encode user: %w", err)
	}

	resp, err := casdoor.PostRawBody[string, any](ctx, s.Client, action, p, string(body))
	if err != nil {
		return false, err
	}
	return resp.Data == models.Affected, nil
}

// SetPassword changes the password of owner/name. oldPassword may be empty
// when the application's credentials are allowed to reset passwords.
func (s *UserService) SetPassword(ctx context.Context, owner, name, oldPassword, newPassword string) error {
	form := map[string]string{
		"userOwner":   owner,
		"userName":    name,
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}

	_, err := casdoor.PostForm[any, any](ctx, s.Client, "set-password", nil, form)
	return err
}
