package module

import (
	"skyvault/internal/platform/config"
	"skyvault/internal/services/archive/service"
)

// FromConfig reads archive settings from the config.Conf
func FromConfig(cfg config.Conf) service.Config {
	af := cfg.Prefix("ARCHIVE_")
	return service.Config{
		ImageRoot:     af.MayString("IMAGE_ROOT", "/data/images"),
		LongitudeDeg:  af.MayFloat64("LONGITUDE_DEG", 138.60298),
		Timezone:      af.MayString("TIMEZONE", "Australia/Adelaide"),
		WindowHours:   af.MayFloat64("WINDOW_HOURS", 0.5),
		ClearMinBytes: af.MayInt64("CLEAR_MIN_BYTES", 10_500_000),
		ClearMaxBytes: af.MayInt64("CLEAR_MAX_BYTES", 11_000_000),
	}
}
