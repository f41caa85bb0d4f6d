package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num  int   // 1-based position in the list; 0 if ByID
	ID   int64 // task id; 0 unless ByID
	ByID bool  // true for @<id> references
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrTaskNotFound indicates a reference that matches no task.
var ErrTaskNotFound = errors.New("task not found")

// ParseTaskRef parses a task reference from args.
//
// Accepted forms:
//  1. <digits>   position as printed by list (1-based, insertion order)
//  2. @<digits>  task id
//
// Exactly one argument is accepted.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := strings.TrimSpace(args[0])

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Num: num}, nil
	}

	if rest, ok := strings.CutPrefix(arg, "@"); ok && isAllDigits(rest) {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{ID: id, ByID: true}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
}

// String returns the reference as the user would type it.
func (r TaskRef) String() string {
	if r.ByID {
		return "@" + strconv.FormatInt(r.ID, 10)
	}
	return strconv.Itoa(r.Num)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
