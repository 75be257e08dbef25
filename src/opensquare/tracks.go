package opensquare

import "fmt"

// OpenGov track ids mapped to the short names used in proposal titles.
// Unknown tracks fall back to "OT".
var trackShortNames = map[uint16]string{
	0:  "R",   // Root
	1:  "WC",  // WhitelistedCaller
	2:  "WFC", // WishForChange
	10: "SA",  // StakingAdmin
	11: "T",   // Treasurer
	12: "LA",  // LeaseAdmin
	13: "FA",  // FellowshipAdmin
	14: "GA",  // GeneralAdmin
	15: "AA",  // AuctionAdmin
	20: "RC",  // ReferendumCanceller
	21: "RK",  // ReferendumKiller
	30: "ST",  // SmallTipper
	31: "BT",  // BigTipper
	32: "SS",  // SmallSpender
	33: "MS",  // MediumSpender
	34: "BS",  // BigSpender
}

func TrackShortName(trackId uint16) string {
	if name, ok := trackShortNames[trackId]; ok {
		return name
	}
	return "OT"
}

// Display title, e.g. "[SA] #123 - Increase validator count"
func FormatTitle(trackId uint16, referendumIndex uint32, title string) string {
	return fmt.Sprintf("[%s] #%d - %s", TrackShortName(trackId), referendumIndex, title)
}
