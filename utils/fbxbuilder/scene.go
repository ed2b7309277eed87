package fbxbuilder

import (
	"github.com/mogaika/fbx/builders/bfbx73"

	"github.com/mogaika/orrery/scenegraph"
	"github.com/mogaika/orrery/utils"
)

// ExportScene adds every node under root as a Null model carrying its local
// translation, rotation and scale, linked to its parent. Root links to the
// document root.
func ExportScene(root *scenegraph.Node, filename string) *FBXBuilder {
	f := NewFBXBuilder(filename)
	if root != nil {
		f.exportNode(root, 0)
	}
	return f
}

func (f *FBXBuilder) exportNode(n *scenegraph.Node, parentId int64) int64 {
	id := f.GenerateId()
	name := n.Name
	if name == "" {
		name = n.ID.String()
	}

	pos := n.Position()
	rot := utils.RotationToEulerDegrees(n.Rotation())
	scale := n.Scale()

	model := bfbx73.Model(id, name+"\x00\x01Model", "Null").AddNodes(
		bfbx73.Version(232),
		bfbx73.Properties70().AddNodes(
			bfbx73.P("Lcl Translation", "Lcl Translation", "", "A+",
				float64(pos[0]), float64(pos[1]), float64(pos[2])),
			bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A+",
				float64(rot[0]), float64(rot[1]), float64(rot[2])),
			bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A+",
				float64(scale[0]), float64(scale[1]), float64(scale[2])),
		),
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)
	nodeAttribute := bfbx73.NodeAttribute(f.GenerateId(), name+"\x00\x01NodeAttribute", "Null").AddNodes(
		bfbx73.TypeFlags("Null"),
	)

	f.AddObjects(model, nodeAttribute)
	f.AddConnections(
		bfbx73.C("OO", nodeAttribute.Properties[0].(int64), id),
		bfbx73.C("OO", id, parentId),
	)

	for _, c := range n.Children() {
		f.exportNode(c, id)
	}
	return id
}
