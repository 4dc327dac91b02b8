package trainlog

import (
	"fmt"

	"github.com/nxadm/tail"

	"github.com/livp123/trainplot/pkg/errors"
)

// readLines feeds every line of path to fn, then returns. The file is read once
// from the start; it is never followed or reopened.
// readLines 从头到尾读取文件一次，不跟踪追加内容。
func readLines(path string, fn func(line string)) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    false,
		ReOpen:    false,
		MustExist: true,
		Poll:      true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return errors.ClassifyFSError(path, err)
	}

	var lineErr error
	for line := range t.Lines {
		if line.Err != nil {
			if lineErr == nil {
				lineErr = line.Err
			}
			continue
		}
		if lineErr == nil {
			fn(line.Text)
		}
	}

	// Lines is closed once the reader stops; Wait reports why it stopped.
	if err := t.Wait(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if lineErr != nil {
		return fmt.Errorf("reading %s: %w", path, lineErr)
	}
	return nil
}
