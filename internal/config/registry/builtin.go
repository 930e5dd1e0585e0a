package registry

// Display categories used by the built-in definitions.
const (
	CategoryGraphics = "Graphics"
	CategoryDisplay  = "Display"
	CategoryAudio    = "Audio"
	CategoryInput    = "Input"
)

// Builtin returns a registry seeded with the well-known profile settings.
func Builtin() *Registry {
	r := New()

	for _, s := range builtinSettings() {
		r.MustRegister(s)
	}
	return r
}

func builtinSettings() []Setting {
	return []Setting{
		boolSetting("GstRender.Dx12Enabled", "1", CategoryDisplay,
			"Use the DirectX 12 renderer."),
		enumSetting("GstRender.FullscreenMode", "1", CategoryDisplay,
			"Window mode: 0 windowed, 1 fullscreen, 2 borderless.",
			"0", "1", "2"),
		enumSetting("GstRender.VSyncMode", "0", CategoryDisplay,
			"Vertical sync mode.", "0", "1", "2"),
		boolSetting("GstRender.FutureFrameRendering", "1", CategoryDisplay,
			"Queue frames ahead of the GPU for higher throughput."),
		floatSetting("GstRender.FrameRateLimit", "144.000000", CategoryDisplay,
			"Frame rate cap when the limiter is enabled.", 30, 1000),
		boolSetting("GstRender.FrameRateLimiterEnable", "1", CategoryDisplay,
			"Enable the frame rate limiter."),
		floatSetting("GstRender.ResolutionScale", "1.0", CategoryDisplay,
			"Internal render resolution as a fraction of output resolution.", 0.25, 2),

		floatSetting("GstRender.MotionBlurWorld", "0.5", CategoryGraphics,
			"World motion blur intensity.", 0, 1),
		floatSetting("GstRender.MotionBlurWeapon", "0.0", CategoryGraphics,
			"Weapon motion blur intensity.", 0, 1),
		boolSetting("GstRender.AmbientOcclusion", "1", CategoryGraphics,
			"Enable ambient occlusion."),
		qualitySetting("GstRender.OverallGraphicsQuality",
			"Master graphics quality; individual settings override it."),
		qualitySetting("GstRender.TextureQuality", "Texture detail level."),
		qualitySetting("GstRender.EffectsQuality", "Effects detail level."),
		qualitySetting("GstRender.PostProcessQuality", "Post-processing detail level."),
		qualitySetting("GstRender.LightingQuality", "Lighting detail level."),
		qualitySetting("GstRender.ShadowQuality", "Shadow detail level."),
		qualitySetting("GstRender.TerrainQuality", "Terrain detail level."),
		qualitySetting("GstRender.VegetationQuality", "Vegetation detail level."),

		floatSetting("GstAudio.MasterVolume", "1.0", CategoryAudio,
			"Master output volume.", 0, 1),
		floatSetting("GstAudio.MusicVolume", "0.8", CategoryAudio,
			"Music volume.", 0, 1),
		floatSetting("GstAudio.SfxVolume", "1.0", CategoryAudio,
			"Sound effects volume.", 0, 1),
		floatSetting("GstAudio.VoiceVolume", "1.0", CategoryAudio,
			"Dialogue volume.", 0, 1),
		boolSetting("GstAudio.VoiceChatEnabled", "1", CategoryAudio,
			"Enable voice chat."),
		floatSetting("GstAudio.VoiceChatVolume", "1.0", CategoryAudio,
			"Voice chat volume.", 0, 1),
		boolSetting("GstAudio.HitIndicatorSound", "1", CategoryAudio,
			"Play an audio cue on confirmed hits."),
		boolSetting("GstAudio.InGameAnnouncer_OnOff", "1", CategoryAudio,
			"Enable the in-game announcer."),
		boolSetting("GstAudio.SubtitlesEnemies", "1", CategoryAudio,
			"Show subtitles for enemy voice lines."),
		boolSetting("GstAudio.SubtitlesFriendlies", "1", CategoryAudio,
			"Show subtitles for friendly voice lines."),
		boolSetting("GstAudio.SubtitlesSquad", "1", CategoryAudio,
			"Show subtitles for squad voice lines."),

		floatSetting("GstInput.MouseSensitivity", "0.5", CategoryInput,
			"Mouse look sensitivity.", 0, 1),
		boolSetting("GstInput.MouseSmoothing", "0", CategoryInput,
			"Apply smoothing to mouse input."),
		boolSetting("GstInput.MouseAcceleration", "0", CategoryInput,
			"Apply acceleration to mouse input."),
	}
}

func boolSetting(key, def, category, desc string) Setting {
	return Setting{Key: key, Type: TypeBool, Default: def, Category: category, Description: desc}
}

func enumSetting(key, def, category, desc string, allowed ...string) Setting {
	return Setting{Key: key, Type: TypeEnum, Default: def, Category: category, Description: desc, Enum: allowed}
}

func floatSetting(key, def, category, desc string, minVal, maxVal float64) Setting {
	return Setting{
		Key: key, Type: TypeFloat, Default: def, Category: category, Description: desc,
		Minimum: &minVal, Maximum: &maxVal,
	}
}

// qualitySetting is an int setting on the shared 0 (low) to 3 (ultra) scale.
func qualitySetting(key, desc string) Setting {
	lo, hi := 0.0, 3.0
	return Setting{
		Key: key, Type: TypeInt, Default: "2", Category: CategoryGraphics, Description: desc,
		Minimum: &lo, Maximum: &hi,
	}
}
