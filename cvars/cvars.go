// Package cvars is the named registry of every cvar spec.md §6 lists,
// grouped into the same categories: renderer core, post chain,
// quality, device, debug, plus the client-side interpolation knobs
// component D needs.
package cvars

import "goquake2/cvar"

var (
	// Renderer core
	RFullbright      = cvar.MustRegister("r_fullbright", "0", cvar.NONE)
	RNoCull          = cvar.MustRegister("r_nocull", "0", cvar.NONE)
	RNoVis           = cvar.MustRegister("r_novis", "0", cvar.ARCHIVE)
	RDrawEntities    = cvar.MustRegister("r_drawentities", "1", cvar.NONE)
	RDrawWorld       = cvar.MustRegister("r_drawworld", "1", cvar.NONE)
	ROverbrightBits  = cvar.MustRegister("r_overbrightbits", "1", cvar.ARCHIVE)
	RStainMap        = cvar.MustRegister("r_stainmap", "1", cvar.ARCHIVE)
	RCaustics        = cvar.MustRegister("r_caustics", "1", cvar.ARCHIVE)
	RDetailTexture   = cvar.MustRegister("r_detailtexture", "0", cvar.ARCHIVE)
	RCelShading      = cvar.MustRegister("r_celshading", "0", cvar.ARCHIVE)
	RFog             = cvar.MustRegister("r_fog", "1", cvar.ARCHIVE)
	RTimeBasedFX     = cvar.MustRegister("r_timebasedfx", "1", cvar.ARCHIVE)
	RHWGamma         = cvar.MustRegister("r_hwgamma", "1", cvar.ARCHIVE)
	RSpeeds          = cvar.MustRegister("r_speeds", "0", cvar.NONE)

	// Post-process chain
	RBloom          = cvar.MustRegister("r_bloom", "1", cvar.ARCHIVE)
	RBloomIntensity = cvar.MustRegister("r_bloom_intensity", "0.7", cvar.ARCHIVE)
	RBloomThreshold = cvar.MustRegister("r_bloom_threshold", "0.8", cvar.ARCHIVE)
	RSSAO           = cvar.MustRegister("r_ssao", "1", cvar.ARCHIVE)
	RSSAOIntensity  = cvar.MustRegister("r_ssao_intensity", "1.0", cvar.ARCHIVE)
	RSSAORadius     = cvar.MustRegister("r_ssao_radius", "0.5", cvar.ARCHIVE)
	RFXAA           = cvar.MustRegister("r_fxaa", "1", cvar.ARCHIVE)
	RFSR            = cvar.MustRegister("r_fsr", "0", cvar.ARCHIVE)
	RFSRScale       = cvar.MustRegister("r_fsr_scale", "1.0", cvar.ARCHIVE)
	RFSRSharpness   = cvar.MustRegister("r_fsr_sharpness", "0.2", cvar.ARCHIVE)
	RFSRColorBoxScale = cvar.MustRegister("r_fsr_colorbox_scale", "1.25", cvar.ARCHIVE)

	// Quality
	RMSAA         = cvar.MustRegister("r_msaa", "0", cvar.ARCHIVE)
	RAnisotropy   = cvar.MustRegister("r_anisotropy", "1", cvar.ARCHIVE)
	VkTextureMode = cvar.MustRegister("vk_texturemode", "GL_LINEAR_MIPMAP_LINEAR", cvar.ARCHIVE)
	VkPicMip      = cvar.MustRegister("vk_picmip", "0", cvar.ARCHIVE)
	VkSkyMip      = cvar.MustRegister("vk_skymip", "0", cvar.ARCHIVE)
	GLRoundDown   = cvar.MustRegister("gl_round_down", "1", cvar.ARCHIVE)

	// Device
	VkSwapInterval       = cvar.MustRegister("vk_swapinterval", "1", cvar.ARCHIVE)
	VkMode               = cvar.MustRegister("vk_mode", "0", cvar.ARCHIVE|cvar.LATCH)
	VidFullscreen        = cvar.MustRegister("vid_fullscreen", "0", cvar.ARCHIVE|cvar.LATCH)
	VidGamma             = cvar.MustRegister("vid_gamma", "1.0", cvar.ARCHIVE)
	VkScreenshotFormat   = cvar.MustRegister("vk_screenshot_format", "tga", cvar.ARCHIVE)
	VkScreenshotQuality  = cvar.MustRegister("vk_screenshot_quality", "90", cvar.ARCHIVE)

	// Debug
	VkLightmap  = cvar.MustRegister("vk_lightmap", "0", cvar.NONE)
	VkShowTris  = cvar.MustRegister("vk_showtris", "0", cvar.NONE)
	VkLockPVS   = cvar.MustRegister("vk_lockpvs", "0", cvar.NONE)
	VkClear     = cvar.MustRegister("vk_clear", "1", cvar.NONE)
	VkFinish    = cvar.MustRegister("vk_finish", "0", cvar.NONE)
	VkLog       = cvar.MustRegister("vk_log", "0", cvar.NONE)

	// Client-side entity interpolation (component D)
	ClientNoLerp          = cvar.MustRegister("cl_nolerp", "0", cvar.NONE)
	ClientCubicInterp     = cvar.MustRegister("cl_cubic_interp", "0", cvar.ARCHIVE)
	ClientExtrapolate     = cvar.MustRegister("cl_extrapolate", "1", cvar.ARCHIVE)
	ClientExtrapolateMax  = cvar.MustRegister("cl_extrapolate_max", "200", cvar.ARCHIVE)
	ClientAnimContinue    = cvar.MustRegister("cl_anim_continue", "1", cvar.ARCHIVE)

	// Console (component J)
	ConNotifyTime     = cvar.MustRegister("con_notifytime", "3", cvar.ARCHIVE)
	ScreenConsoleWidth = cvar.MustRegister("scr_conwidth", "0", cvar.ARCHIVE)
	ScreenConsoleScale = cvar.MustRegister("scr_conscale", "0", cvar.ARCHIVE)
)
