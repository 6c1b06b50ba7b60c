package leopard16

import logging "github.com/dep2p/log"

var logger = logging.Logger("leopard16")

func init() {
	logging.SetupLogging(logging.Config{
		Format: logging.JSONOutput,
		Stderr: true,
		Level:  logging.LevelInfo,
	})
}

// SetLog redirects package logging to filename, optionally keeping a
// copy on stderr. Safe to call before or after any encoder/decoder has
// been constructed.
func SetLog(filename string, stderr ...bool) {
	useStderr := false
	if len(stderr) > 0 {
		useStderr = stderr[0]
	}
	logging.SetupLogging(logging.Config{
		Format: logging.JSONOutput,
		Stderr: useStderr,
		File:   filename,
		Level:  logging.LevelInfo,
	})
}
