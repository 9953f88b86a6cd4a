// Package scene holds ordered object lists.
package scene

import "nxui/ui/object"

// Scene is an ordered list of objects. Insertion order is both event
// dispatch order and paint order, so later objects draw on top.
type Scene struct {
	objects []object.Object
}

func New() *Scene { return &Scene{} }

// AddObject appends o. The same object may be added to several scenes.
func (s *Scene) AddObject(o object.Object) { s.objects = append(s.objects, o) }

// Objects returns the objects in insertion order. The slice must not be
// modified.
func (s *Scene) Objects() []object.Object { return s.objects }

func (s *Scene) Len() int { return len(s.objects) }
