//go:build !windows && !darwin

package wallpaper

import (
	"context"
	"strings"
	"testing"
)

func TestGsettingsSetter(t *testing.T) {
	var calls []string
	s := platformSetter(func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, name+" "+strings.Join(args, " "))
		return nil, nil
	})
	if err := s.Set(context.Background(), "/home/me/temp/wallpaper_1.jpg"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	want := []string{
		"gsettings set org.gnome.desktop.background picture-uri file:///home/me/temp/wallpaper_1.jpg",
		"gsettings set org.gnome.desktop.background picture-uri-dark file:///home/me/temp/wallpaper_1.jpg",
	}
	if len(calls) != 2 || calls[0] != want[0] || calls[1] != want[1] {
		t.Errorf("calls = %v", calls)
	}
}
