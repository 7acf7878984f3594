package inline

import (
	"encoding/json"

	"github.com/srtdeck/srtdeck/cue"
	"github.com/srtdeck/srtdeck/util"
)

type Output struct {
	// Source is the file path or URL the track was read from.
	Source string `json:"source"`
	// Name is a short display name derived from the source.
	Name string `json:"name"`
	// Total is the number of cues in the whole track, before any selection.
	Total int `json:"total"`
	// DurationMs is the largest end offset in the whole track.
	DurationMs int64 `json:"duration_ms"`
	// Cues are the selected cues, in source order.
	Cues cue.Track `json:"cues"`
}

func asJson(source string, track, selected cue.Track) ([]byte, error) {
	if selected == nil {
		selected = cue.Track{}
	}

	return json.Marshal(&Output{
		Source:     source,
		Name:       util.SourceName(source),
		Total:      len(track),
		DurationMs: track.Duration().Milliseconds(),
		Cues:       selected,
	})
}
