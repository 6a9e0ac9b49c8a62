package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var ErrUserNotFound = errors.New("username did not resolve to a user")

type User struct {
	ID   int64
	Name string
}

type lookupUsersRequest struct {
	Usernames          []string `json:"usernames"`
	ExcludeBannedUsers bool     `json:"excludeBannedUsers"`
}

type lookupUsersResponse struct {
	Data []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"data"`
}

func (c *Client) LookupUser(ctx context.Context, username string) (User, error) {
	endpoint := fmt.Sprintf("%s/v1/usernames/users", c.cfg.UsersBaseURL)
	payload := lookupUsersRequest{
		Usernames:          []string{username},
		ExcludeBannedUsers: true,
	}

	var resp lookupUsersResponse
	if err := c.call(ctx, "lookup_user", http.MethodPost, endpoint, payload, &resp); err != nil {
		return User{}, err
	}
	if len(resp.Data) == 0 {
		return User{}, ErrUserNotFound
	}

	return User{ID: resp.Data[0].ID, Name: resp.Data[0].Name}, nil
}
