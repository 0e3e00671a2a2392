//go:build windows

package shell

import (
	"fmt"
	"os/exec"
	"sync"
)

// processGroupCleanup only kills the direct child; Windows has no process groups.
type processGroupCleanup struct {
	cmd  *exec.Cmd
	done chan struct{}
	once sync.Once
	err  error
}

func setupProcessGroup(_ *exec.Cmd) {}

func newProcessGroupCleanup(cmd *exec.Cmd, cancelCh <-chan struct{}) *processGroupCleanup {
	pg := &processGroupCleanup{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go pg.watchForCancel(cancelCh)
	return pg
}

func (pg *processGroupCleanup) watchForCancel(cancelCh <-chan struct{}) {
	select {
	case <-cancelCh:
		if pg.cmd.Process != nil {
			_ = pg.cmd.Process.Kill()
		}
	case <-pg.done:
	}
}

// Wait waits for the command to exit.
func (pg *processGroupCleanup) Wait() error {
	pg.once.Do(func() {
		pg.err = pg.cmd.Wait()
		close(pg.done)
		if pg.err != nil {
			pg.err = fmt.Errorf("command wait: %w", pg.err)
		}
	})
	return pg.err
}
