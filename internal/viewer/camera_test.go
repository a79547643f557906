package viewer

import (
	"testing"

	"github.com/Faultbox/brickmesh/pkg/math"
)

func TestOrbitCameraPosition(t *testing.T) {
	cam := NewOrbitCamera()
	cam.Center = math.V3(0, 0, 0)
	cam.Distance = 100
	cam.RotationX = 0
	cam.RotationY = 0

	pos := cam.Position()
	if absf(pos.X) > 1e-4 || absf(pos.Y) > 1e-4 || absf(pos.Z-100) > 1e-4 {
		t.Errorf("expected position on +Z axis, got %+v", pos)
	}
}

func TestOrbitCameraZoomClamped(t *testing.T) {
	cam := NewOrbitCamera()
	cam.Distance = 100

	for i := 0; i < 200; i++ {
		cam.HandleZoom(10)
	}
	if cam.Distance < cam.MinDistance {
		t.Errorf("distance %f below minimum %f", cam.Distance, cam.MinDistance)
	}

	for i := 0; i < 500; i++ {
		cam.HandleZoom(-10)
	}
	if cam.Distance > cam.MaxDistance {
		t.Errorf("distance %f above maximum %f", cam.Distance, cam.MaxDistance)
	}
}

func TestOrbitCameraDragClampsPitch(t *testing.T) {
	cam := NewOrbitCamera()

	cam.HandleDrag(0, 1e6)
	if cam.RotationX > cam.MaxPitch {
		t.Errorf("pitch %f above maximum %f", cam.RotationX, cam.MaxPitch)
	}

	cam.HandleDrag(0, -1e6)
	if cam.RotationX < cam.MinPitch {
		t.Errorf("pitch %f below minimum %f", cam.RotationX, cam.MinPitch)
	}
}

func TestFitToBoundsCentersCamera(t *testing.T) {
	cam := NewOrbitCamera()
	cam.FitToBounds(math.V3(-10, 0, -10), math.V3(10, 20, 10))

	if absf(cam.Center.X) > 1e-4 || absf(cam.Center.Y-10) > 1e-4 || absf(cam.Center.Z) > 1e-4 {
		t.Errorf("expected center (0,10,0), got %+v", cam.Center)
	}
	if cam.Distance <= 0 {
		t.Errorf("expected positive distance, got %f", cam.Distance)
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
