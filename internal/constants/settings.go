package constants

const (
	// Default Settings Values
	DefaultNotificationSound  = SoundBeep
	DefaultDarkMode           = false
	DefaultNotificationVolume = 80
	DefaultVibration          = true
	DefaultInterval           = 15

	MinVolume = 0
	MaxVolume = 100
)
