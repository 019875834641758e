package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/viant/postboard"
	"github.com/viant/postboard/config"
	"github.com/viant/postboard/router"
)

// routes maps commands to the route they belong to, navigation restores a
// remembered session and applies the role guard before the command runs.
var routes = map[string]string{
	"logout":   router.HomePath,
	"profile":  router.ProfilePath,
	"users":    router.UsersListPath,
	"posts":    router.HomePath,
	"my-posts": router.ProfilePath,
}

// Run parses args and executes the selected command, writing results to out
func Run(ctx context.Context, args []string, out io.Writer, opts ...postboard.Option) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}
	if parser.Active == nil {
		return fmt.Errorf("command was not specified")
	}
	cfg, err := loadConfig(ctx, options)
	if err != nil {
		return err
	}
	app, err := postboard.New(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer app.Close()
	defer printNotifications(out, app)

	command := parser.Active.Name
	if route, ok := routes[command]; ok {
		location, err := app.Navigator.Navigate(ctx, route)
		if err != nil {
			return err
		}
		if location.Redirected {
			return fmt.Errorf("%v: not allowed for the current session", command)
		}
	}
	return execute(ctx, app, command, options, out)
}

func execute(ctx context.Context, app *postboard.App, command string, options *Options, out io.Writer) error {
	aClient := app.Client
	switch command {
	case "login":
		ret, err := aClient.Login(ctx, options.Login.Credentials())
		if err != nil {
			return err
		}
		return printJSON(out, app.Store.Identity(), ret.Status)
	case "register":
		ret, err := aClient.Register(ctx, options.Register.Credentials())
		if err != nil {
			return err
		}
		return printJSON(out, ret.Data, ret.Status)
	case "logout":
		ret, err := aClient.Logout(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, ret.Data, ret.Status)
	case "profile":
		ret, err := aClient.Profile(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, ret.Data, ret.Status)
	case "users":
		ret, err := aClient.Users(ctx, options.Users.Pagination())
		if err != nil {
			return err
		}
		return printJSON(out, ret.Data, ret.Status)
	case "posts":
		ret, err := aClient.Posts(ctx, options.Posts.Pagination())
		if err != nil {
			return err
		}
		return printJSON(out, ret.Data, ret.Status)
	case "my-posts":
		ret, err := aClient.MyPosts(ctx, options.MyPosts.Pagination())
		if err != nil {
			return err
		}
		return printJSON(out, ret.Data, ret.Status)
	case "navigate":
		location, err := app.Navigator.Navigate(ctx, options.Navigate.Args.Path)
		if err != nil {
			return err
		}
		return printJSON(out, location, 0)
	case "remember":
		value, err := parseSwitch(options.Remember.Args.Value)
		if err != nil {
			return err
		}
		if err = app.Store.ToggleRememberMe(ctx, value); err != nil {
			return err
		}
		return printJSON(out, map[string]bool{"rememberMe": value}, 0)
	}
	return fmt.Errorf("unsupported command: %v", command)
}

func loadConfig(ctx context.Context, options *Options) (*config.Config, error) {
	cfg, err := config.Load(ctx, options.Config, options.EnvFiles...)
	if err != nil {
		return nil, err
	}
	if options.URL != "" {
		cfg.BaseURL = strings.TrimRight(options.URL, "/")
	}
	if options.State != "" {
		cfg.PreferenceURL = filepath.Join(options.State, "preference.json")
		cfg.CookieJarPath = filepath.Join(options.State, "cookies.json")
	}
	if options.LogLevel != "" {
		cfg.Log.Level = options.LogLevel
	}
	return cfg, cfg.Validate()
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	ret, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid remember value %q, expected on or off", value)
	}
	return ret, nil
}

func printJSON(out io.Writer, value interface{}, status int) error {
	if status != 0 {
		if _, err := fmt.Fprintf(out, "status: %d\n", status); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func printNotifications(out io.Writer, app *postboard.App) {
	for _, notification := range app.Notifications.Drain() {
		_, _ = fmt.Fprintln(out, notification.String())
	}
}
