package cli

import (
	"github.com/viant/postboard/schema"
)

// Options represents command line options
type Options struct {
	Config   string   `short:"c" long:"config" description:"config file URL"`
	EnvFiles []string `short:"e" long:"env" description:".env file, can be repeated"`
	URL      string   `short:"u" long:"url" description:"api base URL"`
	State    string   `short:"s" long:"state" description:"directory keeping remember me preference and cookies"`
	LogLevel string   `short:"l" long:"log-level" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`

	Login    CredentialsCommand `command:"login" description:"login and start a session"`
	Register CredentialsCommand `command:"register" description:"register an account"`
	Logout   struct{}           `command:"logout" description:"end session"`
	Profile  struct{}           `command:"profile" description:"show current user profile"`
	Users    PageCommand        `command:"users" description:"list users"`
	Posts    PageCommand        `command:"posts" description:"list posts"`
	MyPosts  PageCommand        `command:"my-posts" description:"list posts of current user"`
	Navigate NavigateCommand    `command:"navigate" description:"resolve a route with the role guard"`
	Remember RememberCommand    `command:"remember" description:"turn remember me on or off"`
}

// CredentialsCommand represents login and register options
type CredentialsCommand struct {
	Username string `long:"username" description:"username" required:"true"`
	Password string `long:"password" description:"password" required:"true"`
}

func (c *CredentialsCommand) Credentials() schema.Credentials {
	return schema.Credentials{Username: c.Username, Password: c.Password}
}

// PageCommand represents list options
type PageCommand struct {
	Page  int `long:"page" description:"page number"`
	Limit int `long:"limit" description:"page size"`
}

func (c *PageCommand) Pagination() schema.Pagination {
	ret := schema.Pagination{}
	if c.Page > 0 {
		ret.Page = &c.Page
	}
	if c.Limit > 0 {
		ret.Limit = &c.Limit
	}
	return ret
}

type NavigateCommand struct {
	Args struct {
		Path string `positional-arg-name:"path" required:"yes"`
	} `positional-args:"yes"`
}

type RememberCommand struct {
	Args struct {
		Value string `positional-arg-name:"on|off" required:"yes"`
	} `positional-args:"yes"`
}
