//go:build !windows && !darwin

package wallpaper

import (
	"context"
	"net/url"
)

type gsettingsSetter struct {
	run Runner
}

func platformSetter(run Runner) Setter {
	return gsettingsSetter{run: run}
}

// Set updates the GNOME background for both light and dark styles.
func (s gsettingsSetter) Set(ctx context.Context, path string) error {
	uri := (&url.URL{Scheme: "file", Path: path}).String()
	for _, key := range []string{"picture-uri", "picture-uri-dark"} {
		if err := runChecked(ctx, s.run, "gsettings", "set", "org.gnome.desktop.background", key, uri); err != nil {
			return err
		}
	}
	return nil
}
