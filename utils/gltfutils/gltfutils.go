// Package gltfutils exports a scene graph as a glTF document. Every scene
// node becomes a glTF node with the same local translation, rotation and
// scale, so viewers recompose the same world transforms.
package gltfutils

import (
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/orrery/render"
	"github.com/mogaika/orrery/scenegraph"
	"github.com/mogaika/orrery/utils"
)

// unit cube centered at origin, matching the demos' makeCube
var cubePositions = [][3]float32{
	{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
}

var cubeIndices = []uint32{
	0, 1, 2, 0, 2, 3, // front
	1, 5, 6, 1, 6, 2, // right
	5, 4, 7, 5, 7, 6, // back
	4, 0, 3, 4, 3, 7, // left
	3, 2, 6, 3, 6, 7, // top
	4, 5, 1, 4, 1, 0, // bottom
}

type exporter struct {
	doc       *gltf.Document
	cube      map[[4]float32]uint32 // mesh index per color
	positions uint32
	indices   uint32
}

func NewDocument() *gltf.Document {
	return gltf.NewDocument()
}

// ExportScene converts the tree under root into a new document whose
// default scene contains root.
func ExportScene(root *scenegraph.Node) (*gltf.Document, error) {
	if root == nil {
		return nil, errors.New("export: nil root")
	}
	e := &exporter{
		doc:  NewDocument(),
		cube: make(map[[4]float32]uint32),
	}
	e.positions = modeler.WritePosition(e.doc, cubePositions)
	e.indices = modeler.WriteIndices(e.doc, cubeIndices)

	rootIndex := e.exportNode(root)
	e.doc.Scenes[0].Nodes = append(e.doc.Scenes[0].Nodes, rootIndex)
	return e.doc, nil
}

func (e *exporter) exportNode(n *scenegraph.Node) uint32 {
	index := uint32(len(e.doc.Nodes))
	node := &gltf.Node{
		Name:        n.Name,
		Translation: n.Position(),
		Rotation:    utils.RotationToQuat(n.Rotation()),
		Scale:       n.Scale(),
	}
	e.doc.Nodes = append(e.doc.Nodes, node)

	if n.HasPayload() {
		color := [4]float32{1, 1, 1, 1}
		if s, ok := n.Payload().(*render.Shape); ok {
			color = s.Color
		}
		node.Mesh = gltf.Index(e.cubeMesh(color))
	}

	for _, c := range n.Children() {
		node.Children = append(node.Children, e.exportNode(c))
	}
	return index
}

func (e *exporter) cubeMesh(color [4]float32) uint32 {
	if mesh, ok := e.cube[color]; ok {
		return mesh
	}

	factor := new([4]float32)
	*factor = color
	material := uint32(len(e.doc.Materials))
	e.doc.Materials = append(e.doc.Materials, &gltf.Material{
		Name:        "shape",
		DoubleSided: true,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: factor,
		},
	})

	indices := e.indices
	mesh := uint32(len(e.doc.Meshes))
	e.doc.Meshes = append(e.doc.Meshes, &gltf.Mesh{
		Name: "cube",
		Primitives: []*gltf.Primitive{
			&gltf.Primitive{
				Indices:    &indices,
				Attributes: map[string]uint32{"POSITION": e.positions},
				Material:   gltf.Index(material),
			},
		},
	})
	e.cube[color] = mesh
	return mesh
}

// ExportBinary writes doc as a single .glb stream.
func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return errors.Wrap(encoder.Encode(doc), "encode glb")
}

// ExportJSON writes doc as .gltf JSON with buffers embedded as data URIs.
func ExportJSON(w io.Writer, doc *gltf.Document) error {
	for _, b := range doc.Buffers {
		if b.URI == "" {
			b.EmbeddedResource()
		}
	}
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = false
	return errors.Wrap(encoder.Encode(doc), "encode gltf")
}
