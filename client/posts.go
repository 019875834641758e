package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/viant/postboard/entity"
	"github.com/viant/postboard/schema"
)

func (c *Client) CreatePost(ctx context.Context, payload *schema.CreatePost) (*Result[schema.PostResult], error) {
	ret, err := send[schema.PostResult](ctx, c, http.MethodPost, "/post/create", nil, payload)
	if err != nil {
		return nil, err
	}
	c.cache.AddEntries(entity.Posts, &ret.Data.Post)
	return ret, nil
}

func (c *Client) Post(ctx context.Context, id string) (*Result[schema.PostResult], error) {
	ret, err := send[schema.PostResult](ctx, c, http.MethodGet, "/post/single/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	c.cache.AddEntries(entity.Posts, &ret.Data.Post)
	return ret, nil
}

func (c *Client) Posts(ctx context.Context, pagination schema.Pagination) (*Result[schema.PostsResult], error) {
	return c.listPosts(ctx, "/posts", pagination)
}

func (c *Client) MyPosts(ctx context.Context, pagination schema.Pagination) (*Result[schema.PostsResult], error) {
	return c.listPosts(ctx, "/post/my-posts", pagination)
}

func (c *Client) listPosts(ctx context.Context, URI string, pagination schema.Pagination) (*Result[schema.PostsResult], error) {
	ret, err := send[schema.PostsResult](ctx, c, http.MethodGet, URI, pagination.Values(), nil)
	if err != nil {
		return nil, err
	}
	entity.Add(c.cache, entity.Posts, ret.Data.Posts)
	return ret, nil
}

func (c *Client) UpdateMyPost(ctx context.Context, payload *schema.UpdateMyPost) (*Result[schema.UpdatedPostResult], error) {
	ret, err := send[schema.UpdatedPostResult](ctx, c, http.MethodPatch, "/post/update", nil, payload)
	if err != nil {
		return nil, err
	}
	c.cache.AddEntries(entity.Posts, &ret.Data.UpdatedPost)
	return ret, nil
}

// DeleteMyPost deletes a post and drops it from the cache
func (c *Client) DeleteMyPost(ctx context.Context, payload *schema.DeleteMyPost) (*Result[schema.MessageResult], error) {
	ret, err := send[schema.MessageResult](ctx, c, http.MethodDelete, "/post/delete", nil, payload)
	if err != nil {
		return nil, err
	}
	c.cache.DeleteEntry(entity.Posts, payload.PostID)
	return ret, nil
}
