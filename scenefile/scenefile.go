// Package scenefile reads and writes YAML scene descriptions.
package scenefile

import (
	"io/ioutil"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/orrery/camera"
)

type Rotation struct {
	Axis    string  `yaml:"axis"`
	Degrees float32 `yaml:"degrees"`
	Mode    string  `yaml:"mode,omitempty"`
}

type Node struct {
	Name     string      `yaml:"name,omitempty"`
	Draw     bool        `yaml:"draw,omitempty"`
	Color    *mgl32.Vec4 `yaml:"color,omitempty"`
	Position *mgl32.Vec3 `yaml:"position,omitempty"`
	Scale    *mgl32.Vec3 `yaml:"scale,omitempty"`
	// Matrix is an absolute accumulated rotation, applied before Rotate.
	Matrix   *mgl32.Mat4 `yaml:"rotation,omitempty"`
	Rotate   []Rotation  `yaml:"rotate,omitempty"`
	Children []*Node     `yaml:"children,omitempty"`
}

type Binding struct {
	Key     string      `yaml:"key"`
	Node    string      `yaml:"node,omitempty"`
	Op      string      `yaml:"op"`
	Axis    string      `yaml:"axis,omitempty"`
	Degrees float32     `yaml:"degrees,omitempty"`
	Mode    string      `yaml:"mode,omitempty"`
	Factor  float32     `yaml:"factor,omitempty"`
	Vector  *mgl32.Vec3 `yaml:"vector,omitempty"`
}

type Animation struct {
	Node    string  `yaml:"node"`
	Axis    string  `yaml:"axis"`
	Degrees float32 `yaml:"degrees"`
	Mode    string  `yaml:"mode,omitempty"`
}

type File struct {
	Name       string        `yaml:"name"`
	Camera     camera.Params `yaml:"camera"`
	Root       *Node         `yaml:"root"`
	Bindings   []Binding     `yaml:"bindings,omitempty"`
	Animations []Animation   `yaml:"animations,omitempty"`
}

// Parse decodes a scene description. Camera fields that are not present
// keep the camera.Default values.
func Parse(data []byte) (*File, error) {
	f := &File{Camera: camera.Default()}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, errors.Wrap(err, "parse scene")
	}
	if f.Root == nil {
		return nil, errors.New("parse scene: missing root")
	}
	return f, nil
}

func Load(path string) (*File, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %q", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", path)
	}
	return f, nil
}

func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

func (f *File) Save(path string) error {
	data, err := f.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal scene")
	}
	return errors.Wrapf(ioutil.WriteFile(path, data, 0644), "write scene %q", path)
}
