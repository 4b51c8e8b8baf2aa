//go:build windows

package wallpaper

import (
	"context"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/starford/desknote/internal/apperr"
)

const (
	spiSetDeskWallpaper  = 0x0014
	spifUpdateIniFile    = 0x01
	spifSendWinIniChange = 0x02
)

var procSystemParametersInfo = windows.NewLazySystemDLL("user32.dll").NewProc("SystemParametersInfoW")

type spiSetter struct{}

func platformSetter(Runner) Setter {
	return spiSetter{}
}

// Set calls SystemParametersInfoW(SPI_SETDESKWALLPAPER) and persists the change.
func (spiSetter) Set(_ context.Context, path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrWallpaperSet, err)
	}
	r, _, callErr := procSystemParametersInfo.Call(
		spiSetDeskWallpaper,
		0,
		uintptr(unsafe.Pointer(p)),
		spifUpdateIniFile|spifSendWinIniChange,
	)
	if r == 0 {
		return fmt.Errorf("%w: SystemParametersInfoW: %v", apperr.ErrWallpaperSet, callErr)
	}
	return nil
}
