package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/backend/googletasks"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

func remoteFactory(r *testutil.FakeRemote) commands.RemoteFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Remote, error) {
		return r, nil
	}
}

func TestPushCommand_DefaultList(t *testing.T) {
	s, _ := newStore(t, "Buy milk", "Walk dog")
	s.Toggle(context.Background(), 1001)
	remote := testutil.NewFakeRemote()

	cmd := &commands.PushCmd{}
	cmd.SetRemoteFactory(remoteFactory(remote))
	stdout, stderr, code := runCommand(t, cmd, s, nil, false)

	require.Equal(t, exitcode.Success, code, stderr)
	assert.Equal(t, "pushed 2 tasks to My Tasks\n", stdout)
	assert.Equal(t, s.Tasks(), remote.Created(testutil.DefaultListID))
}

func TestPushCommand_NamedList(t *testing.T) {
	s, _ := newStore(t, "Buy milk")
	remote := testutil.NewFakeRemote()
	remote.AddList("work-id", "Work")

	cmd := &commands.PushCmd{}
	cmd.SetRemoteFactory(remoteFactory(remote))
	cmd.SetListName("  work ")
	stdout, _, code := runCommand(t, cmd, s, nil, false)

	require.Equal(t, exitcode.Success, code)
	assert.Equal(t, "pushed 1 tasks to Work\n", stdout)
	assert.Len(t, remote.Created("work-id"), 1)
	assert.Empty(t, remote.Created(testutil.DefaultListID))
}

func TestPushCommand_Quiet(t *testing.T) {
	s, _ := newStore(t, "Buy milk")
	cmd := &commands.PushCmd{}
	cmd.SetRemoteFactory(remoteFactory(testutil.NewFakeRemote()))

	stdout, stderr, code := runCommand(t, cmd, s, nil, true)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestPushCommand_Errors(t *testing.T) {
	tests := []struct {
		name       string
		listName   string
		setup      func(r *testutil.FakeRemote)
		wantCode   int
		wantStderr string
	}{
		{
			name:       "list not found",
			listName:   "Groceries",
			wantCode:   exitcode.UserError,
			wantStderr: "error: list not found: Groceries\n",
		},
		{
			name:     "ambiguous list",
			listName: "Work",
			setup: func(r *testutil.FakeRemote) {
				r.AddList("w1", "Work")
				r.AddList("w2", "work")
			},
			wantCode:   exitcode.UserError,
			wantStderr: "error: ambiguous list name: Work\n",
		},
		{
			name: "auth",
			setup: func(r *testutil.FakeRemote) {
				r.DefaultListErr = fmt.Errorf("%w: token revoked", googletasks.ErrAuth)
			},
			wantCode: exitcode.AuthError,
		},
		{
			name: "backend",
			setup: func(r *testutil.FakeRemote) {
				r.DefaultListErr = errors.New("connection reset")
			},
			wantCode:   exitcode.BackendError,
			wantStderr: "error: backend error: connection reset\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newStore(t, "Buy milk")
			remote := testutil.NewFakeRemote()
			if tt.setup != nil {
				tt.setup(remote)
			}
			cmd := &commands.PushCmd{}
			cmd.SetRemoteFactory(remoteFactory(remote))
			cmd.SetListName(tt.listName)

			stdout, stderr, code := runCommand(t, cmd, s, nil, false)

			assert.Equal(t, tt.wantCode, code)
			assert.Empty(t, stdout)
			if tt.wantStderr != "" {
				assert.Equal(t, tt.wantStderr, stderr)
			} else {
				assert.Contains(t, stderr, "error: ")
			}
		})
	}
}

func TestPushCommand_StopsOnCreateFailure(t *testing.T) {
	s, _ := newStore(t, "a", "b", "c")
	remote := testutil.NewFakeRemote()
	remote.CreateTaskErr = errors.New("quota exceeded")
	remote.FailAfter = 1

	cmd := &commands.PushCmd{}
	cmd.SetRemoteFactory(remoteFactory(remote))
	_, stderr, code := runCommand(t, cmd, s, nil, false)

	assert.Equal(t, exitcode.BackendError, code)
	assert.Equal(t, "error: push stopped after 1 of 3 tasks\nerror: backend error: quota exceeded\n", stderr)
	assert.Len(t, remote.Created(testutil.DefaultListID), 1)
}

func TestPushCommand_NoCredentials(t *testing.T) {
	s, _ := newStore(t, "Buy milk")
	cmd := &commands.PushCmd{}

	stdout, stderr, code := runCommand(t, cmd, s, nil, false)

	assert.Equal(t, exitcode.AuthError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "oauth_client.json not found")
}

func TestPushCommand_UnexpectedArgument(t *testing.T) {
	s, _ := newStore(t)
	cmd := &commands.PushCmd{}
	cmd.SetRemoteFactory(remoteFactory(testutil.NewFakeRemote()))

	_, stderr, code := runCommand(t, cmd, s, []string{"Work"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unexpected argument: Work\n", stderr)
}
