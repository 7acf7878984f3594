// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Playback - these keys govern how the external player is driven and polled.
const (
	PlayerBinary          = "player.binary"
	PlayerPollIntervalMs  = "player.poll_interval_ms"
	PlayerSeekThresholdMs = "player.seek_threshold_ms"
	PlayerSeekStep        = "player.seek_step"
)

// Subtitle Tracks - these keys bound the retrieval of subtitle sources.
const (
	SubtitlesMaxBytes  = "subtitles.max_bytes"
	SubtitlesTimeoutMs = "subtitles.timeout_ms"
)

// Layout - these keys size the now-playing box and the page column.
const (
	LayoutBoxHeight   = "layout.box_height"
	LayoutColumnWidth = "layout.column_width"
	LayoutMiniWidth   = "layout.mini_width"
)

// Preferences - these keys control persistence of the visual toggles between sessions.
const (
	PrefsPersist = "prefs.persist"
)

// Transcript Search - these keys tune the "/" search in the terminal UI.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// History - these keys govern the record of recently played media.
const (
	HistorySaveOnExit = "history.save_on_exit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
