package models

import "time"

// Vec3 is a point or axis triple in scene units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Transform describes a placed model's position, rotation and scale.
// Rotation is in degrees around each axis.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
	Scale    Vec3 `json:"scale"`
}

// DefaultTransform places a model at the origin, unrotated, at unit scale.
func DefaultTransform() Transform {
	return Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}}
}

// Vec3Patch carries a partial Vec3 update; nil fields are left unchanged.
type Vec3Patch struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	Z *float64 `json:"z,omitempty"`
}

// TransformPatch carries a partial Transform update. Each component is
// merged field-by-field: supplying only position.x leaves y and z alone.
type TransformPatch struct {
	Position *Vec3Patch `json:"position,omitempty"`
	Rotation *Vec3Patch `json:"rotation,omitempty"`
	Scale    *Vec3Patch `json:"scale,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p TransformPatch) IsZero() bool {
	return p.Position == nil && p.Rotation == nil && p.Scale == nil
}

func (v *Vec3) apply(p *Vec3Patch) {
	if p == nil {
		return
	}
	if p.X != nil {
		v.X = *p.X
	}
	if p.Y != nil {
		v.Y = *p.Y
	}
	if p.Z != nil {
		v.Z = *p.Z
	}
}

// Apply merges the patch into the transform.
func (t *Transform) Apply(p TransformPatch) {
	t.Position.apply(p.Position)
	t.Rotation.apply(p.Rotation)
	t.Scale.apply(p.Scale)
}

// PlacedModel is one furniture instance placed into a scene. Display fields
// are copied from the catalog entry at placement time, so later catalog
// changes never affect already-placed instances.
type PlacedModel struct {
	InstanceID string     `json:"instance_id"`
	ModelID    string     `json:"model_id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	AssetURL   string     `json:"asset_url"`
	Dimensions Dimensions `json:"dimensions"`
	Transform  Transform  `json:"transform"`
}

// AmbientLight is a flat color/intensity pair.
type AmbientLight struct {
	Color     string  `json:"color"`
	Intensity float64 `json:"intensity"`
}

// DirectionalLight is a directional source with a position.
type DirectionalLight struct {
	Color     string  `json:"color"`
	Intensity float64 `json:"intensity"`
	Position  Vec3    `json:"position"`
}

// HemisphereLight blends a sky and ground color.
type HemisphereLight struct {
	SkyColor    string  `json:"sky_color"`
	GroundColor string  `json:"ground_color"`
	Intensity   float64 `json:"intensity"`
}

// Lighting is a scene's fixed-shape lighting block.
type Lighting struct {
	Ambient     AmbientLight     `json:"ambient"`
	Directional DirectionalLight `json:"directional"`
	Hemisphere  HemisphereLight  `json:"hemisphere"`
}

// Fog is the optional distance fog setting.
type Fog struct {
	Enabled bool    `json:"enabled"`
	Color   string  `json:"color"`
	Near    float64 `json:"near"`
	Far     float64 `json:"far"`
}

// Environment is a scene's fixed-shape environment block.
type Environment struct {
	BackgroundColor string `json:"background_color"`
	FloorGrid       bool   `json:"floor_grid"`
	FloorColor      string `json:"floor_color"`
	Shadows         bool   `json:"shadows"`
	Fog             Fog    `json:"fog"`
}

// DefaultLighting is the lighting every new scene starts with.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient: AmbientLight{Color: "#FFFFFF", Intensity: 0.6},
		Directional: DirectionalLight{
			Color:     "#FFFFFF",
			Intensity: 0.8,
			Position:  Vec3{X: 5, Y: 10, Z: 5},
		},
		Hemisphere: HemisphereLight{
			SkyColor:    "#87CEEB",
			GroundColor: "#8B4513",
			Intensity:   0.5,
		},
	}
}

// DefaultEnvironment is the environment every new scene starts with.
func DefaultEnvironment() Environment {
	return Environment{
		BackgroundColor: "#E5E5E5",
		FloorGrid:       true,
		FloorColor:      "#F5F5F5",
		Shadows:         true,
		Fog:             Fog{Enabled: false, Color: "#FFFFFF", Near: 10, Far: 50},
	}
}

// SceneSnapshot is an immutable, serializable view of a scene. All fields are
// value types, so copying the struct (and its models slice) is a deep copy.
type SceneSnapshot struct {
	SceneID     string        `json:"scene_id"`
	RoomType    string        `json:"room_type"`
	OwnerID     string        `json:"owner_id,omitempty"`
	Models      []PlacedModel `json:"models"`
	Lighting    Lighting      `json:"lighting"`
	Environment Environment   `json:"environment"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// DesignPayload is the untrusted design recommendation a session may be
// initialized from.
type DesignPayload struct {
	KeyElements []string `json:"key_elements"`
}
