// Package hero holds the static hero table: names, role tags and how similar
// heroes are to each other.
package hero

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

var ErrUnknownHero = errors.New("unknown hero")

type Hero string

func (h Hero) String() string { return string(h) }

type Tag int

const (
	Carry Tag = iota
	Core
	Support
)

var tagNames = map[Tag]string{
	Carry:   "Carry",
	Core:    "Core",
	Support: "Support",
}

func (t Tag) String() string {
	return tagNames[t]
}

func ParseTag(s string) (Tag, error) {
	for tag, name := range tagNames {
		if name == s {
			return tag, nil
		}
	}
	return 0, fmt.Errorf("invalid hero tag: %s", s)
}

// NextTag rotates Core, Support, Carry for consecutive pair indexes.
func NextTag(i int) Tag {
	return [...]Tag{Core, Support, Carry}[i%3]
}

func normalize(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
