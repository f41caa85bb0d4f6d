package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todo/internal/backend/googletasks"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&PushCmd{})
}

// RemoteFactory creates the Remote that push copies tasks into.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (service.Remote, error)

// PushCmd copies every local task into a Google Tasks list.
// The copy is one way: nothing is read back from the remote list.
type PushCmd struct {
	listName string
	remote   RemoteFactory
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetRemoteFactory replaces the Google Tasks client (for testing).
func (c *PushCmd) SetRemoteFactory(f RemoteFactory) {
	c.remote = f
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "todo push [--list <list-name>]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	factory := c.remote
	if factory == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n", cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: todo login)")
			return exitcode.AuthError
		}
		factory = newGoogleRemote
	}

	remote, err := factory(ctx, cfg)
	if err != nil {
		return reportRemoteError(errOut, err, "")
	}

	listName := c.listName
	if listName == "" {
		listName = cfg.Google.List
	}

	var list service.TaskList
	if listName != "" {
		list, err = remote.ResolveList(ctx, listName)
	} else {
		list, err = remote.DefaultList(ctx)
	}
	if err != nil {
		return reportRemoteError(errOut, err, listName)
	}

	tasks := svc.Tasks()
	for i, t := range tasks {
		if err := remote.CreateTask(ctx, list.ID, t); err != nil {
			cfg.Log().Warn("push interrupted", "pushed", i, "total", len(tasks), "error", err)
			fmt.Fprintf(errOut, "error: push stopped after %d of %d tasks\n", i, len(tasks))
			return reportRemoteError(errOut, err, listName)
		}
		cfg.Log().Debug("pushed task", "id", t.ID, "list", list.ID)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d tasks to %s\n", len(tasks), list.Title)
	}
	return exitcode.Success
}

func newGoogleRemote(ctx context.Context, cfg *config.Config) (service.Remote, error) {
	return googletasks.New(ctx, cfg)
}

// reportRemoteError maps a remote error onto an error line and exit code.
func reportRemoteError(errOut io.Writer, err error, listName string) int {
	switch {
	case errors.Is(err, googletasks.ErrAuth):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, googletasks.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", listName)
		return exitcode.UserError
	case errors.Is(err, googletasks.ErrNotFound) && listName != "":
		fmt.Fprintf(errOut, "error: list not found: %s\n", listName)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
