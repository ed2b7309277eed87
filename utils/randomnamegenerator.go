package utils

import (
	"math/rand"

	"github.com/Pallinder/go-randomdata"
)

// RandomNameGenerator hands out unique, reproducible names for unnamed nodes.
type RandomNameGenerator map[string]struct{}

// Reserve marks a name as taken so RandomName never returns it.
func (rng *RandomNameGenerator) Reserve(name string) {
	if *rng == nil {
		*rng = make(map[string]struct{})
	}
	(*rng)[name] = struct{}{}
}

func (rng *RandomNameGenerator) RandomName(prefix string) string {
	if *rng == nil {
		*rng = make(map[string]struct{})
	}
	randomdata.CustomRand(rand.New(rand.NewSource(int64(len(*rng)))))
	for {
		name := prefix + randomdata.SillyName()
		// avoid duplicate names
		if _, exists := (*rng)[name]; !exists {
			(*rng)[name] = struct{}{}
			return name
		}
	}
}
