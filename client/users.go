package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/viant/postboard/entity"
	"github.com/viant/postboard/schema"
)

func (c *Client) Profile(ctx context.Context) (*Result[schema.ProfileResult], error) {
	ret, err := send[schema.ProfileResult](ctx, c, http.MethodGet, "/users/profile", nil, nil)
	if err != nil {
		return nil, err
	}
	c.cache.AddEntries(entity.Users, &ret.Data.Profile)
	return ret, nil
}

// Users lists users and merges them into the cache
func (c *Client) Users(ctx context.Context, pagination schema.Pagination) (*Result[schema.UsersResult], error) {
	ret, err := send[schema.UsersResult](ctx, c, http.MethodGet, "/users/list", pagination.Values(), nil)
	if err != nil {
		return nil, err
	}
	entity.Add(c.cache, entity.Users, ret.Data.Users)
	return ret, nil
}

func (c *Client) User(ctx context.Context, id string) (*Result[schema.UserResult], error) {
	ret, err := send[schema.UserResult](ctx, c, http.MethodGet, "/users/single-user/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	c.cache.AddEntries(entity.Users, &ret.Data.User)
	return ret, nil
}

func (c *Client) UpdateMyAccount(ctx context.Context, payload *schema.UpdateMyAccount) (*Result[schema.UpdatedUserResult], error) {
	ret, err := send[schema.UpdatedUserResult](ctx, c, http.MethodPatch, "/users/update", nil, payload)
	if err != nil {
		return nil, err
	}
	c.cache.AddEntries(entity.Users, &ret.Data.UpdatedUser)
	return ret, nil
}

func (c *Client) UpdateUsersAccount(ctx context.Context, payload *schema.UpdateUsersAccount) (*Result[schema.UpdatedUserResult], error) {
	ret, err := send[schema.UpdatedUserResult](ctx, c, http.MethodPatch, "/users/update-user", nil, payload)
	if err != nil {
		return nil, err
	}
	c.cache.AddEntries(entity.Users, &ret.Data.UpdatedUser)
	return ret, nil
}
