//go:build !windows

package chart

import (
	"github.com/google/renameio/v2"

	"github.com/fkuefler/blackjack-lab/src/errors"
)

// writeFileAtomic replaces path with data through a temp file in the same
// directory. The umask applies to the final mode.
func writeFileAtomic(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
