package models

import "strings"

// Package represents a single installable package, either a Debian
// package or a Python distribution. Pin is an optional exact version.
type Package struct {
	Name string `yaml:"name"`
	Pin  string `yaml:"pin,omitempty"`
}

// ParsePackage splits a package spec string into name and pin.
// Accepted forms: "name", "name=1.2" (deb style), "name==1.2" (pip style).
func ParsePackage(spec string) Package {
	spec = strings.TrimSpace(spec)
	if name, pin, ok := strings.Cut(spec, "=="); ok {
		return Package{Name: name, Pin: pin}
	}
	if name, pin, ok := strings.Cut(spec, "="); ok {
		return Package{Name: name, Pin: pin}
	}
	return Package{Name: spec}
}

// DebSpec returns the apt-get argument form of the package.
func (p Package) DebSpec() string {
	if p.Pin == "" {
		return p.Name
	}
	return p.Name + "=" + p.Pin
}

// PipSpec returns the pip argument form of the package.
func (p Package) PipSpec() string {
	if p.Pin == "" {
		return p.Name
	}
	return p.Name + "==" + p.Pin
}
