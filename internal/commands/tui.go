package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/tui"
)

func init() {
	Register(&TuiCmd{})
}

// TuiCmd opens the interactive view.
type TuiCmd struct {
	in io.Reader
}

// SetInput replaces stdin (for testing).
func (c *TuiCmd) SetInput(in io.Reader) {
	c.in = in
}

func (c *TuiCmd) Name() string      { return "tui" }
func (c *TuiCmd) Aliases() []string { return []string{"ui"} }
func (c *TuiCmd) Synopsis() string  { return "Open the interactive task list" }
func (c *TuiCmd) Usage() string     { return "todo tui" }
func (c *TuiCmd) NeedsStore() bool  { return true }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	in := c.in
	if in == nil {
		in = os.Stdin
	}
	if err := tui.Run(ctx, svc, in, out, cfg.Log()); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
