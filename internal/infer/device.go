package infer

// Device is the preferred execution target for model layers.
type Device int

const (
	// DeviceAccelerator offloads all layers to the GPU/Metal backend when
	// the runtime was built with one.
	DeviceAccelerator Device = iota
	// DeviceCPU keeps every layer on the CPU.
	DeviceCPU
)

// allGPULayers exceeds any Mistral layer count; llama.cpp offloads
// everything when asked for more layers than the model has.
const allGPULayers = 999

// PickDevice maps the --cpu flag to a device preference.
func PickDevice(useCPU bool) Device {
	if useCPU {
		return DeviceCPU
	}
	return DeviceAccelerator
}

// GPULayers returns the layer-offload count to request from llama.cpp.
func (d Device) GPULayers() int {
	if d == DeviceCPU {
		return 0
	}
	return allGPULayers
}

func (d Device) String() string {
	if d == DeviceCPU {
		return "cpu"
	}
	return "accelerator"
}
