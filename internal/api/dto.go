package api

import (
	"path/filepath"

	"github.com/starford/desknote/internal/command"
	"github.com/starford/desknote/internal/index"
	"github.com/starford/desknote/internal/models"
	"github.com/starford/desknote/internal/noteservice"
)

// SubmitNoteRequest is the request body for submitting a note.
type SubmitNoteRequest struct {
	Text string `json:"text" example:"Standup at /time\n/textbf{ship it}" validate:"required"`
}

// OutcomeResponse describes a rendered note.
type OutcomeResponse struct {
	ID             string        `json:"id" example:"6f1c..." validate:"required"`
	Text           string        `json:"text" example:"Standup at 09:30:00" validate:"required"`
	ImageURL       string        `json:"image_url" example:"/wallpapers/wallpaper_1728729005.jpg" validate:"required"`
	Flags          command.Flags `json:"flags" validate:"required"`
	Entry          *models.Entry `json:"entry,omitempty"`
	Exit           bool          `json:"exit"`
	WallpaperSet   bool          `json:"wallpaper_set"`
	WallpaperError string        `json:"wallpaper_error,omitempty"`
	LogError       string        `json:"log_error,omitempty"`
}

func newOutcomeResponse(out *noteservice.Outcome) OutcomeResponse {
	resp := OutcomeResponse{
		ID:           out.ID,
		Text:         out.Text,
		ImageURL:     wallpaperURL(out.ImagePath),
		Flags:        out.Flags,
		Entry:        out.Entry,
		Exit:         out.Exit,
		WallpaperSet: out.WallpaperSet(),
	}
	if out.WallpaperErr != nil {
		resp.WallpaperError = out.WallpaperErr.Error()
	}
	if out.LogErr != nil {
		resp.LogError = out.LogErr.Error()
	}
	return resp
}

func wallpaperURL(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	return "/wallpapers/" + filepath.Base(imagePath)
}

// NoteListResponse wraps paginated log entries.
type NoteListResponse struct {
	Notes []models.Entry `json:"notes" validate:"required"`
	Total int            `json:"total" example:"42" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results" validate:"required"`
}
