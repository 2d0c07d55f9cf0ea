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

package migrate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/es6migrate/pkg/migrate"
)

func TestRunStage(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(ctx context.Context, content []byte) ([]byte, error)
		input   string
		want    string
		wantErr string
	}{
		{
			name:  "advance",
			fn:    func(ctx context.Context, content []byte) ([]byte, error) { return append(content, '!'), nil },
			input: "hi",
			want:  "hi!",
		},
		{
			name:    "panic_becomes_failure",
			fn:      func(ctx context.Context, content []byte) ([]byte, error) { panic("kaboom") },
			input:   "hi",
			wantErr: "stage Lint panicked: kaboom",
		},
		{
			name:    "empty_output_is_failure",
			fn:      func(ctx context.Context, content []byte) ([]byte, error) { return nil, nil },
			input:   "hi",
			wantErr: "stage Lint produced no content",
		},
		{
			name:  "empty_input_may_stay_empty",
			fn:    func(ctx context.Context, content []byte) ([]byte, error) { return nil, nil },
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := migrate.StageFunc{StageName: migrate.StageLint, Fn: tt.fn}
			outcome := migrate.RunStage(testContext(t), stage, []byte(tt.input))

			if tt.wantErr != "" {
				require.True(t, outcome.Failed())
				assert.Nil(t, outcome.Next())
				assert.Contains(t, outcome.Err().Error(), tt.wantErr)
				return
			}

			require.False(t, outcome.Failed())
			assert.NoError(t, outcome.Err())
			assert.Equal(t, tt.want, string(outcome.Next()))
		})
	}
}

func TestRunStageSkipsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	called := false
	stage := migrate.StageFunc{
		StageName: migrate.StageConvert,
		Fn: func(ctx context.Context, content []byte) ([]byte, error) {
			called = true
			return content, nil
		},
	}

	outcome := migrate.RunStage(ctx, stage, []byte("x"))
	assert.True(t, outcome.Failed())
	assert.ErrorIs(t, outcome.Err(), context.Canceled)
	assert.False(t, called)
}

func TestFailWithoutError(t *testing.T) {
	outcome := migrate.Fail(nil)
	assert.True(t, outcome.Failed())
	assert.Error(t, outcome.Err())
}

func TestDestinationPath(t *testing.T) {
	tests := []struct {
		file    string
		src     string
		dst     string
		want    string
		wantErr bool
	}{
		{file: "a/b.coffee", src: ".coffee", dst: ".js", want: "a/b.js"},
		{file: "b.coffee", src: ".coffee", dst: ".js", want: "b.js"},
		{file: "./x/one.coffee", src: ".coffee", dst: ".js", want: "x/one.js"},
		{file: "a.b/c.d.coffee", src: ".coffee", dst: ".mjs", want: "a.b/c.d.mjs"},
		{file: "a/b.coffee.md", src: ".coffee", dst: ".js", wantErr: true},
		{file: "a/.coffee", src: ".coffee", dst: ".js", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := migrate.DestinationPath(tt.file, tt.src, tt.dst)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, migrate.ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
