package chart

import (
	"os"

	"github.com/fkuefler/blackjack-lab/src/errors"
)

// writeFileAtomic writes path directly; renameio has no Windows support.
func writeFileAtomic(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
