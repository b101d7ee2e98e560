package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Pallinder/go-randomdata"
)

// PathNamer hands out unique scene paths made of random silly names under a
// prefix, for example "/demo/glowingbird". Equal seeds give equal sequences.
type PathNamer struct {
	prefix string
	used   map[string]int
}

func NewPathNamer(prefix string, seed int64) *PathNamer {
	randomdata.CustomRand(rand.New(rand.NewSource(seed)))
	return &PathNamer{
		prefix: strings.TrimRight(prefix, "/"),
		used:   make(map[string]int),
	}
}

// Next returns a path not returned before. Repeated names get a numeric
// suffix.
func (n *PathNamer) Next() string {
	path := n.prefix + "/" + pathSegment(randomdata.SillyName())
	n.used[path]++
	if count := n.used[path]; count > 1 {
		return fmt.Sprintf("%s_%d", path, count)
	}
	return path
}

func pathSegment(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		}
		return '_'
	}, name)
}
