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

package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/walteh/es6migrate/pkg/migrate"
)

// 📊 Progress renders a progress bar while a batch runs
type Progress struct {
	writer io.Writer
	title  string
	bar    *pterm.ProgressbarPrinter
	failed int
}

var _ migrate.Observer = (*Progress)(nil)

// 🏭 NewProgress creates a progress bar writing to w
func NewProgress(w io.Writer, title string) *Progress {
	return &Progress{writer: w, title: title}
}

func (p *Progress) BatchStarted(total int) {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(p.title).
		WithWriter(p.writer).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		pterm.Warning.WithWriter(p.writer).Printfln("progress unavailable: %v", err)
		return
	}
	p.bar = bar
}

func (p *Progress) FileFinished(outcome migrate.FileOutcome, done, total int) {
	if !outcome.Completed() {
		p.failed++
	}
	if p.bar == nil {
		return
	}
	p.bar.UpdateTitle(fmt.Sprintf("%s %s (%d/%d)", p.title, filepath.Base(outcome.FileID), done, total))
	p.bar.Increment()
}

func (p *Progress) BatchResolved(outcome *migrate.BatchOutcome) {
	if p.bar != nil && p.bar.IsActive {
		_, _ = p.bar.Stop()
	}
	if p.failed > 0 {
		pterm.Error.WithWriter(p.writer).Printfln("%d of %d files failed", p.failed, outcome.Total)
	}
}
