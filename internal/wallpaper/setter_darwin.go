//go:build darwin

package wallpaper

import (
	"context"
	"strconv"
)

type osascriptSetter struct {
	run Runner
}

func platformSetter(run Runner) Setter {
	return osascriptSetter{run: run}
}

// Set asks System Events to set the picture of every desktop.
func (s osascriptSetter) Set(ctx context.Context, path string) error {
	script := `tell application "System Events" to tell every desktop to set picture to ` + strconv.Quote(path)
	return runChecked(ctx, s.run, "osascript", "-e", script)
}
