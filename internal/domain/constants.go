package domain

// Booking channel labels. The channel is descriptive only; no external
// channel synchronization happens here.
const (
	ChannelDirect = "direct"
	ChannelPhone  = "phone"
	ChannelWalkIn = "walk_in"
	ChannelOnline = "online"
)

// Channels lists the accepted channel labels
var Channels = []string{ChannelDirect, ChannelPhone, ChannelWalkIn, ChannelOnline}

// IsValidChannel reports whether the label is one of the accepted channels
func IsValidChannel(channel string) bool {
	for _, c := range Channels {
		if c == channel {
			return true
		}
	}
	return false
}

// Business validation constants
const (
	MinGroupRooms  = 2
	MaxNotesLength = 500
	MaxStayNights  = 365
)

// SweeperCancellationReason is recorded when the expiration sweeper
// force-cancels a stale pending reservation
const SweeperCancellationReason = "auto-cancelled: check-in date passed while pending"
