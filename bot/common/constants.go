package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
	ColorLedger  = 0x00FF00 // leaderboard and stats embeds
)

// Command names
const (
	CommandMilestone       = "milestone"
	CommandLeaderboard     = "leaderboard"
	CommandRemoveMilestone = "remove_milestone"
	CommandMyStats         = "my_stats"
)

// Option names shared by the milestone commands
const (
	OptionSpecies  = "species"
	OptionTier     = "tier"
	OptionSheetURL = "sheet_url"
)

// LeaderboardImageName is the attachment name referenced by leaderboard embeds
const LeaderboardImageName = "leaderboard.png"
