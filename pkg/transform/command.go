// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transform

import (
	"bytes"
	"context"
	"os/exec"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/es6migrate/pkg/migrate"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ Command runs an external tool as a stage, content on stdin and result on stdout
type Command struct {
	name   migrate.StageName
	args   []string
	accept []int
}

// 🏭 NewCommand creates a command stage. Exit codes in accept still count as success
// when the tool printed output.
func NewCommand(name migrate.StageName, args []string, accept ...int) *Command {
	return &Command{
		name:   name,
		args:   append([]string(nil), args...),
		accept: accept,
	}
}

func (c *Command) Name() migrate.StageName { return c.name }

// Args returns the command line.
func (c *Command) Args() []string { return append([]string(nil), c.args...) }

// 🔍 Verify checks that the tool can be found
func (c *Command) Verify() error {
	if len(c.args) == 0 {
		return errors.Errorf("%s: empty command", c.name)
	}
	if _, err := exec.LookPath(c.args[0]); err != nil {
		return errors.Errorf("%s: %w", c.name, err)
	}
	return nil
}

// 🏃 Apply pipes content through the tool
func (c *Command) Apply(ctx context.Context, content []byte) ([]byte, error) {
	if len(c.args) == 0 {
		return nil, errors.Errorf("%s: empty command", c.name)
	}

	cmd := exec.CommandContext(ctx, c.args[0], c.args[1:]...)
	cmd.Stdin = bytes.NewReader(content)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	zerolog.Ctx(ctx).Trace().Strs("args", c.args).Msg("running command")

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.Errorf("running %s: %w", c.args[0], ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || !slices.Contains(c.accept, exitErr.ExitCode()) || stdout.Len() == 0 {
			return nil, errors.Errorf("running %s: %w%s", c.args[0], err, detail(stderr.String()))
		}
		zerolog.Ctx(ctx).Debug().Int("exit_code", exitErr.ExitCode()).Str("stderr", strings.TrimSpace(stderr.String())).Msg("command exited with accepted code")
	}

	if stdout.Len() == 0 && len(content) != 0 {
		return nil, errors.Errorf("running %s: no output%s", c.args[0], detail(stderr.String()))
	}

	return stdout.Bytes(), nil
}

func detail(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	return ": " + stderr
}
