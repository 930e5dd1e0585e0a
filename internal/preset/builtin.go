package preset

// sharedAudio is applied by every built-in preset: the audio cues that
// matter regardless of the performance target.
func sharedAudio() map[string]string {
	return map[string]string{
		"GstAudio.HitIndicatorSound":     "1",
		"GstAudio.InGameAnnouncer_OnOff": "1",
		"GstAudio.SubtitlesEnemies":      "1",
		"GstAudio.SubtitlesFriendlies":   "1",
		"GstAudio.SubtitlesSquad":        "1",
	}
}

// withShared merges the shared audio settings into a preset-specific map.
func withShared(settings map[string]string) map[string]string {
	out := sharedAudio()
	for key, val := range settings {
		out[key] = val
	}
	return out
}

// Builtin returns the presets shipped with the tool, in display order.
func Builtin() []Preset {
	return []Preset{
		{
			ID:          "esports",
			Name:        "Esports Pro",
			Description: "Maximum competitive advantage - used by pro players",
			Builtin:     true,
			Settings: withShared(map[string]string{
				"GstRender.Dx12Enabled":            "1",
				"GstRender.FullscreenMode":         "2",
				"GstRender.VSyncMode":              "0",
				"GstRender.FutureFrameRendering":   "1",
				"GstRender.FrameRateLimit":         "240.000000",
				"GstRender.FrameRateLimiterEnable": "0",
				"GstRender.MotionBlurWorld":        "0.000000",
				"GstRender.MotionBlurWeapon":       "0.000000",
				"GstRender.AmbientOcclusion":       "0",
				"GstRender.OverallGraphicsQuality": "0",
				"GstRender.TextureQuality":         "0",
				"GstRender.EffectsQuality":         "0",
				"GstRender.PostProcessQuality":     "0",
				"GstRender.LightingQuality":        "0",
				"GstRender.ShadowQuality":          "0",
				"GstRender.TerrainQuality":         "0",
				"GstRender.VegetationQuality":      "0",
				"GstRender.ResolutionScale":        "1.0",
			}),
		},
		{
			ID:          "competitive",
			Name:        "Competitive",
			Description: "Balanced performance and quality for ranked matches and competitive play",
			Builtin:     true,
			Settings: withShared(map[string]string{
				"GstRender.Dx12Enabled":            "1",
				"GstRender.FullscreenMode":         "1",
				"GstRender.VSyncMode":              "0",
				"GstRender.FutureFrameRendering":   "1",
				"GstRender.FrameRateLimit":         "144.000000",
				"GstRender.FrameRateLimiterEnable": "1",
				"GstRender.MotionBlurWorld":        "0.0",
				"GstRender.MotionBlurWeapon":       "0.0",
				"GstRender.AmbientOcclusion":       "1",
				"GstRender.OverallGraphicsQuality": "1",
				"GstRender.TextureQuality":         "1",
				"GstRender.EffectsQuality":         "1",
				"GstRender.PostProcessQuality":     "1",
				"GstRender.LightingQuality":        "1",
				"GstRender.ShadowQuality":          "1",
				"GstRender.TerrainQuality":         "1",
				"GstRender.VegetationQuality":      "1",
				"GstRender.ResolutionScale":        "1.0",
			}),
		},
		{
			ID:          "balanced",
			Name:        "Balanced",
			Description: "A mix of performance and visual quality for a smooth experience",
			Builtin:     true,
			Settings: withShared(map[string]string{
				"GstRender.Dx12Enabled":            "1",
				"GstRender.FullscreenMode":         "1",
				"GstRender.VSyncMode":              "1",
				"GstRender.FutureFrameRendering":   "1",
				"GstRender.FrameRateLimit":         "144.000000",
				"GstRender.FrameRateLimiterEnable": "1",
				"GstRender.MotionBlurWorld":        "0.5",
				"GstRender.MotionBlurWeapon":       "0.0",
				"GstRender.AmbientOcclusion":       "1",
				"GstRender.OverallGraphicsQuality": "2",
				"GstRender.TextureQuality":         "2",
				"GstRender.EffectsQuality":         "2",
				"GstRender.PostProcessQuality":     "2",
				"GstRender.LightingQuality":        "2",
				"GstRender.ShadowQuality":          "2",
				"GstRender.TerrainQuality":         "2",
				"GstRender.VegetationQuality":      "2",
				"GstRender.ResolutionScale":        "1.0",
			}),
		},
		{
			ID:          "quality",
			Name:        "Quality",
			Description: "Prioritizes stunning visuals with high fidelity graphics for cinematic experience",
			Builtin:     true,
			Settings: withShared(map[string]string{
				"GstRender.Dx12Enabled":            "1",
				"GstRender.FullscreenMode":         "1",
				"GstRender.VSyncMode":              "1",
				"GstRender.FutureFrameRendering":   "1",
				"GstRender.FrameRateLimit":         "60.000000",
				"GstRender.FrameRateLimiterEnable": "1",
				"GstRender.MotionBlurWorld":        "1.0",
				"GstRender.MotionBlurWeapon":       "0.5",
				"GstRender.AmbientOcclusion":       "1",
				"GstRender.OverallGraphicsQuality": "3",
				"GstRender.TextureQuality":         "3",
				"GstRender.EffectsQuality":         "3",
				"GstRender.PostProcessQuality":     "3",
				"GstRender.LightingQuality":        "3",
				"GstRender.ShadowQuality":          "3",
				"GstRender.TerrainQuality":         "3",
				"GstRender.VegetationQuality":      "3",
				"GstRender.ResolutionScale":        "1.2",
			}),
		},
		{
			ID:          "performance",
			Name:        "Performance",
			Description: "Maximum performance settings for low-end hardware and high FPS gaming",
			Builtin:     true,
			Settings: withShared(map[string]string{
				"GstRender.Dx12Enabled":            "1",
				"GstRender.FullscreenMode":         "2",
				"GstRender.VSyncMode":              "0",
				"GstRender.FutureFrameRendering":   "1",
				"GstRender.FrameRateLimit":         "300.000000",
				"GstRender.FrameRateLimiterEnable": "0",
				"GstRender.MotionBlurWorld":        "0.000000",
				"GstRender.MotionBlurWeapon":       "0.000000",
				"GstRender.AmbientOcclusion":       "0",
				"GstRender.OverallGraphicsQuality": "0",
				"GstRender.TextureQuality":         "0",
				"GstRender.EffectsQuality":         "0",
				"GstRender.PostProcessQuality":     "0",
				"GstRender.LightingQuality":        "0",
				"GstRender.ShadowQuality":          "0",
				"GstRender.TerrainQuality":         "0",
				"GstRender.VegetationQuality":      "0",
				"GstRender.ResolutionScale":        "0.8",
			}),
		},
	}
}
