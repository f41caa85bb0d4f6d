package commands

import (
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/task"
)

// ResolveTask finds the task a reference points at.
// Positions count every task in insertion order, regardless of filter.
func ResolveTask(svc service.Service, ref TaskRef) (task.Task, error) {
	if ref.ByID {
		if t, ok := svc.Find(ref.ID); ok {
			return t, nil
		}
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
	}

	tasks := svc.Tasks()
	if ref.Num < 1 || ref.Num > len(tasks) {
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
	}
	return tasks[ref.Num-1], nil
}

// resolveArgs parses and resolves the task reference in args, reporting
// failures on errOut. code is exitcode.Success when t is valid.
func resolveArgs(svc service.Service, args []string, errOut io.Writer) (t task.Task, code int) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, exitcode.UserError
	}

	t, err = ResolveTask(svc, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, exitcode.UserError
	}
	return t, exitcode.Success
}
