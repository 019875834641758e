package client

import (
	"context"

	"github.com/viant/postboard/schema"
)

// Interface represents API operations
type Interface interface {
	Login(ctx context.Context, credentials schema.Credentials) (*Result[schema.AccessTokenResult], error)
	Register(ctx context.Context, credentials schema.Credentials) (*Result[schema.MessageResult], error)
	Refresh(ctx context.Context) (*Result[schema.AccessTokenResult], error)
	Logout(ctx context.Context) (*Result[schema.MessageResult], error)

	Profile(ctx context.Context) (*Result[schema.ProfileResult], error)
	Users(ctx context.Context, pagination schema.Pagination) (*Result[schema.UsersResult], error)
	User(ctx context.Context, id string) (*Result[schema.UserResult], error)
	UpdateMyAccount(ctx context.Context, payload *schema.UpdateMyAccount) (*Result[schema.UpdatedUserResult], error)
	UpdateUsersAccount(ctx context.Context, payload *schema.UpdateUsersAccount) (*Result[schema.UpdatedUserResult], error)

	CreatePost(ctx context.Context, payload *schema.CreatePost) (*Result[schema.PostResult], error)
	Post(ctx context.Context, id string) (*Result[schema.PostResult], error)
	Posts(ctx context.Context, pagination schema.Pagination) (*Result[schema.PostsResult], error)
	MyPosts(ctx context.Context, pagination schema.Pagination) (*Result[schema.PostsResult], error)
	UpdateMyPost(ctx context.Context, payload *schema.UpdateMyPost) (*Result[schema.UpdatedPostResult], error)
	DeleteMyPost(ctx context.Context, payload *schema.DeleteMyPost) (*Result[schema.MessageResult], error)
}

var _ Interface = (*Client)(nil)
