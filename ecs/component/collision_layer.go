package component

// CollisionLayer declares a collision category and mask so the physics space
// can selectively ignore pairs. Category must be a single bit.
type CollisionLayer struct {
	Category uint `yaml:"category"`
	Mask     uint `yaml:"mask"`
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
