package weather

// Classify maps a WMO weather code to an IconKind. Every integer maps to
// exactly one kind; anything unlisted is overcast.
func Classify(code int) IconKind {
	switch {
	case code == 0:
		return IconClear
	case code >= 1 && code <= 3:
		return IconPartlyCloudy
	case code == 45 || code == 48:
		return IconFog
	case code >= 51 && code <= 67:
		return IconRain
	case code >= 71 && code <= 75:
		return IconSnow
	case code >= 80 && code <= 82:
		return IconRain
	case code >= 95:
		return IconStorm
	default:
		return IconOvercast
	}
}

var iconAssets = map[IconKind]string{
	IconClear:        "assets/images/icon-sunny.webp",
	IconPartlyCloudy: "assets/images/icon-partly-cloudy.webp",
	IconFog:          "assets/images/icon-fog.webp",
	IconRain:         "assets/images/icon-rain.webp",
	IconSnow:         "assets/images/icon-snow.webp",
	IconStorm:        "assets/images/icon-storm.webp",
	IconOvercast:     "assets/images/icon-overcast.webp",
}

// Asset returns the image path the page uses for the icon.
func (k IconKind) Asset() string {
	if a, ok := iconAssets[k]; ok {
		return a
	}
	return iconAssets[IconOvercast]
}
