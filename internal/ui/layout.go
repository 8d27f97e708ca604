package ui

import "time"

// Screen regions.
const (
	// buttonWidth is the column reserved on each side for the ‹ and › buttons.
	buttonWidth = 3

	// chromeRows covers the header, pager and footer lines.
	chromeRows = 3

	// headerRows is the number of lines above the stage.
	headerRows = 1

	// arabicPagerRatio switches the dots pager to "3/40" once there are more
	// slides than stage columns divided by this ratio.
	arabicPagerRatio = 2
)

// Timing constants.
const (
	// DefaultPollInterval is how often the UI checks the store for a reloaded deck.
	DefaultPollInterval = 500 * time.Millisecond

	// frameInterval paces slide transition frames.
	frameInterval = 30 * time.Millisecond
)
