package models

// WebXRConfig is the capability descriptor handed to the AR client. It is
// static configuration, returned verbatim, never computed.
type WebXRConfig struct {
	RequiredFeatures   []string          `json:"required_features"`
	OptionalFeatures   []string          `json:"optional_features"`
	DOMOverlay         map[string]string `json:"dom_overlay"`
	SessionMode        string            `json:"session_mode"`
	ReferenceSpaceType string            `json:"reference_space_type"`
	FrameRate          string            `json:"frame_rate"`
}

// DefaultWebXRConfig is the descriptor for the immersive-ar viewer.
func DefaultWebXRConfig() WebXRConfig {
	return WebXRConfig{
		RequiredFeatures: []string{"hit-test", "dom-overlay"},
		OptionalFeatures: []string{
			"light-estimation",
			"camera-access",
			"plane-detection",
			"anchors",
			"hand-tracking",
		},
		DOMOverlay:         map[string]string{"root": "#ar-overlay"},
		SessionMode:        "immersive-ar",
		ReferenceSpaceType: "local-floor",
		FrameRate:          "high",
	}
}
