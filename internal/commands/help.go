package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                      List all tasks
  todo list [common flags] [--filter <mode>] List tasks (all, completed, pending)
  todo add [common flags] <text...>         Add a task
  todo toggle [common flags] <ref>          Flip a task between completed and pending (alias: done)
  todo rm [common flags] <ref>              Delete a task
  todo dump [common flags] [--format json|yaml]
  todo tui [common flags]                   Interactive view
  todo push [common flags] [--list <list-name>]
  todo login [common flags]
  todo logout [common flags]
  todo help
  todo version

Task references:
  <n>     position shown by list
  @<id>   task id

Text starting with "-" goes after "--", e.g. todo add -- -5 degrees jacket

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
