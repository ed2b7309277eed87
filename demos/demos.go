// Package demos ships the hierarchy scenes as embedded scene files.
package demos

import (
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/orrery/scene"
	"github.com/mogaika/orrery/scenefile"
)

//go:embed *.yaml
var files embed.FS

func Names() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		panic(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

func Load(name string) (*scenefile.File, error) {
	data, err := files.ReadFile(name + ".yaml")
	if err != nil {
		return nil, errors.Errorf("unknown demo %q (have %s)", name, strings.Join(Names(), ", "))
	}
	f, err := scenefile.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "demo %q", name)
	}
	return f, nil
}

// Build loads the named demo and constructs its scene.
func Build(name string) (*scene.Context, error) {
	f, err := Load(name)
	if err != nil {
		return nil, err
	}
	return f.Build()
}
