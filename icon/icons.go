package icon

// Icon identifies a UI symbol in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Mark
	Play
	Pause
	Subtitle
	Corner
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "X",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Mark: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(•̀ᴗ•́)",
		squares: "🟦",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   "PLAY",
		kaomoji: "ヽ(•‿•)ノ",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "PAUSE",
		kaomoji: "(－_－) zzZ",
		squares: "🟨",
	},
	Subtitle: {
		emoji:   "💬",
		nerd:    "\U000f0a16",
		plain:   "CC",
		kaomoji: "(°ロ°)",
		squares: "⬜",
	},
	Corner: {
		emoji:   "↘️",
		nerd:    "",
		plain:   "+",
		kaomoji: "(¬‿¬)",
		squares: "🟪",
	},
}
