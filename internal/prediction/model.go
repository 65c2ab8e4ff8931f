package prediction

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/leonid6372/stock-trader/pkg/errs"
)

const modelFormat = "dense-v1"

// Regressor maps an input vector to an output vector.
type Regressor interface {
	Predict(inputs []float64) ([]float64, error)
}

// Model is a frozen feed-forward network of dense layers. Kernels are stored
// input-major: kernel[i][j] is the weight from input i to unit j.
type Model struct {
	inputSize int
	layers    []denseLayer
}

type denseLayer struct {
	kernel     [][]float64
	bias       []float64
	activation func(float64) float64
}

type modelFile struct {
	Format    string       `json:"format"`
	InputSize int          `json:"input_size"`
	Layers    []layerEntry `json:"layers"`
}

type layerEntry struct {
	Kernel     [][]float64 `json:"kernel"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

var activations = map[string]func(float64) float64{
	"":        linear,
	"linear":  linear,
	"relu":    func(x float64) float64 { return math.Max(0, x) },
	"tanh":    math.Tanh,
	"sigmoid": func(x float64) float64 { return 1 / (1 + math.Exp(-x)) },
}

func linear(x float64) float64 { return x }

// LoadModel reads a model artifact from path.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewStack(fmt.Errorf("failed to read model %q: %w", path, err))
	}

	model, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model %q: %w", path, err)
	}

	return model, nil
}

// ParseModel decodes and shape-checks a model artifact.
func ParseModel(data []byte) (*Model, error) {
	var file modelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	if file.Format != modelFormat {
		return nil, fmt.Errorf("unsupported model format %q", file.Format)
	}
	if file.InputSize <= 0 {
		return nil, fmt.Errorf("input_size must be positive, got %d", file.InputSize)
	}
	if len(file.Layers) == 0 {
		return nil, errors.New("model has no layers")
	}

	model := &Model{inputSize: file.InputSize}

	width := file.InputSize
	for i, entry := range file.Layers {
		activation, ok := activations[entry.Activation]
		if !ok {
			return nil, fmt.Errorf("layer %d: unknown activation %q", i, entry.Activation)
		}
		if len(entry.Kernel) != width {
			return nil, fmt.Errorf("layer %d: kernel has %d rows, want %d", i, len(entry.Kernel), width)
		}

		units := len(entry.Bias)
		if units == 0 {
			return nil, fmt.Errorf("layer %d: empty bias", i)
		}
		for r, row := range entry.Kernel {
			if len(row) != units {
				return nil, fmt.Errorf("layer %d: kernel row %d has %d columns, want %d", i, r, len(row), units)
			}
		}

		model.layers = append(model.layers, denseLayer{
			kernel:     entry.Kernel,
			bias:       entry.Bias,
			activation: activation,
		})
		width = units
	}

	return model, nil
}

func (m *Model) InputSize() int { return m.inputSize }

// Predict runs a forward pass. A nil model reports ErrModelNotLoaded.
func (m *Model) Predict(inputs []float64) ([]float64, error) {
	if m == nil {
		return nil, tradeerrs.ErrModelNotLoaded
	}
	if len(inputs) != m.inputSize {
		return nil, fmt.Errorf("got %d inputs, want %d", len(inputs), m.inputSize)
	}

	x := inputs
	for _, layer := range m.layers {
		y := make([]float64, len(layer.bias))
		copy(y, layer.bias)

		for i, xi := range x {
			for j, w := range layer.kernel[i] {
				y[j] += xi * w
			}
		}

		for j := range y {
			y[j] = layer.activation(y[j])
			if math.IsNaN(y[j]) || math.IsInf(y[j], 0) {
				return nil, errors.New("non-finite activation in layer output")
			}
		}

		x = y
	}

	return x, nil
}
