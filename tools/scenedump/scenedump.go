package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/mogaika/orrery/demos"
	"github.com/mogaika/orrery/scene"
	"github.com/mogaika/orrery/scenefile"
	"github.com/mogaika/orrery/scenegraph"
	"github.com/mogaika/orrery/utils"
	"github.com/mogaika/orrery/utils/fbxbuilder"
	"github.com/mogaika/orrery/utils/gltfutils"
)

func dumpTree(root *scenegraph.Node) {
	root.Walk(func(n *scenegraph.Node, depth int) bool {
		mark := ""
		if n.HasPayload() {
			mark = " *"
		}
		fmt.Printf("%s%s%s pos %v scale %v euler %v\n",
			strings.Repeat("  ", depth), n.Name, mark,
			n.Position(), n.Scale(), utils.RotationToEulerDegrees(n.Rotation()))
		return true
	})
}

func writeExport(path string, root *scenegraph.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".fbx") {
		return fbxbuilder.ExportScene(root, path).Write(f)
	}

	var doc *gltf.Document
	if doc, err = gltfutils.ExportScene(root); err != nil {
		return err
	}
	if strings.HasSuffix(path, ".gltf") {
		return gltfutils.ExportJSON(f, doc)
	}
	return gltfutils.ExportBinary(f, doc)
}

func main() {
	var scenePath, demo, keys, export, save string
	var steps int
	var spew bool
	flag.StringVar(&scenePath, "scene", "", "Path to scene yaml file")
	flag.StringVar(&demo, "demo", "solar", "Name of built in demo, used when -scene is empty")
	flag.StringVar(&keys, "keys", "", "Keys to press before rendering, in order")
	flag.IntVar(&steps, "steps", 0, "Animation steps to run before rendering")
	flag.StringVar(&export, "export", "", "Write the scene as .glb, .gltf or .fbx")
	flag.StringVar(&save, "save", "", "Write the resulting scene state as yaml")
	flag.BoolVar(&spew, "spew", false, "Dump draw calls with spew")
	flag.Parse()

	var ctx *scene.Context
	var err error
	if scenePath != "" {
		var f *scenefile.File
		if f, err = scenefile.Load(scenePath); err == nil {
			ctx, err = f.Build()
		}
	} else {
		ctx, err = demos.Build(demo)
	}
	if err != nil {
		log.Fatal(err)
	}

	for _, k := range keys {
		if err := ctx.HandleKey(string(k)); err != nil {
			log.Printf("[scenedump] %v", err)
		}
	}
	for i := 0; i < steps; i++ {
		if err := ctx.Step(); err != nil {
			log.Fatal(err)
		}
	}

	dumpTree(ctx.Root)

	calls, err := ctx.Frame()
	if err != nil {
		log.Fatal(err)
	}
	if spew {
		utils.Dump(calls)
	} else {
		for _, c := range calls {
			fmt.Printf("%s model:\n%s", c.Node, utils.FormatMat4(c.Model))
		}
	}

	if export != "" {
		if err := writeExport(export, ctx.Root); err != nil {
			log.Fatal(err)
		}
		log.Printf("[scenedump] Exported %q", export)
	}
	if save != "" {
		if err := scenefile.Describe(ctx).Save(save); err != nil {
			log.Fatal(err)
		}
		log.Printf("[scenedump] Saved %q", save)
	}
}
