package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-multipass-raytracer/pkg/core"
)

// CameraConfig contains the viewpoint and lens settings
type CameraConfig struct {
	Width         int        // Image width in pixels
	AspectRatio   float64    // Width over height
	VFov          float64    // Vertical field of view in degrees
	LookFrom      core.Point // Camera position
	LookAt        core.Point // Point the camera looks at
	Up            core.Vec3  // Camera-relative up direction
	DefocusAngle  float64    // Variation angle of rays through each pixel, degrees (0 = pinhole)
	FocusDistance float64    // Distance from LookFrom to the plane of perfect focus
	MotionBlur    bool       // Sample ray times in [0, 1) instead of always 0
}

// DefaultCameraConfig returns the camera used when nothing is specified
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:         100,
		AspectRatio:   1.0,
		VFov:          90,
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		DefocusAngle:  0,
		FocusDistance: 10,
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base.
// MotionBlur can only be switched on by an override.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.MotionBlur {
		result.MotionBlur = true
	}
	return result
}

// Camera generates rays for rendering. All fields are derived once in NewCamera.
type Camera struct {
	config       CameraConfig
	imageWidth   int
	imageHeight  int
	center       core.Point
	pixel00Loc   core.Point // Location of pixel 0, 0
	pixelDeltaU  core.Vec3  // Offset to pixel to the right
	pixelDeltaV  core.Vec3  // Offset to pixel below
	u, v, w      core.Vec3  // Camera frame basis vectors
	defocusDiskU core.Vec3  // Defocus disk horizontal radius
	defocusDiskV core.Vec3  // Defocus disk vertical radius
}

// NewCamera creates a camera from the configuration
func NewCamera(config CameraConfig) *Camera {
	imageHeight := int(float64(config.Width) / config.AspectRatio)
	if imageHeight < 1 {
		imageHeight = 1
	}

	center := config.LookFrom

	// Determine viewport dimensions
	theta := mgl64.DegToRad(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * (float64(config.Width) / float64(imageHeight))

	// Calculate the u,v,w unit basis vectors for the camera coordinate frame
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(config.Width))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := center.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(mgl64.DegToRad(config.DefocusAngle/2))

	return &Camera{
		config:       config,
		imageWidth:   config.Width,
		imageHeight:  imageHeight,
		center:       center,
		pixel00Loc:   pixel00Loc,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		u:            u,
		v:            v,
		w:            w,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}
}

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int { return c.imageWidth }

// ImageHeight returns the derived image height in pixels
func (c *Camera) ImageHeight() int { return c.imageHeight }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// GetRay returns a ray from the defocus disk towards a random point inside pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	var time float64
	if c.config.MotionBlur {
		time = sampler.Get1D()
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), time)
}

// sampleSquare returns a random offset in the [-0.5, 0.5]² pixel square
func sampleSquare(sampler core.Sampler) core.Vec2 {
	s := sampler.Get2D()
	return core.NewVec2(s.X-0.5, s.Y-0.5)
}

// defocusDiskSample returns a random point on the camera's defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Point {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}
