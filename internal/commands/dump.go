package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/task"
)

func init() {
	Register(&DumpCmd{})
}

// DumpCmd prints the whole task list in a machine-readable format.
type DumpCmd struct {
	format string
}

// SetFormat sets the output format (for testing).
func (c *DumpCmd) SetFormat(format string) {
	c.format = format
}

func (c *DumpCmd) Name() string      { return "dump" }
func (c *DumpCmd) Aliases() []string { return nil }
func (c *DumpCmd) Synopsis() string  { return "Print all tasks as JSON or YAML" }
func (c *DumpCmd) Usage() string     { return "todo dump [--format json|yaml]" }
func (c *DumpCmd) NeedsStore() bool  { return true }

func (c *DumpCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "json", "")
}

func (c *DumpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	var data []byte
	var err error
	switch strings.ToLower(c.format) {
	case "", "json":
		data, err = store.Encode(svc.Tasks())
		data = append(data, '\n')
	case "yaml", "yml":
		data, err = encodeYAML(svc.Tasks())
	default:
		fmt.Fprintf(errOut, "error: unknown format: %s\n", c.format)
		return exitcode.UserError
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if _, err := out.Write(data); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

func encodeYAML(tasks []task.Task) ([]byte, error) {
	if len(tasks) == 0 {
		return []byte("[]\n"), nil
	}
	return yaml.Marshal(tasks)
}
