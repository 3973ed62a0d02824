package parameters

import (
	"maps"

	"github.com/go-git/go-billy/v5"

	"github.com/backbee/bbinstall/pkg/yamldoc"
)

// Bag is the collected parameter set of one run.
type Bag struct {
	values map[string]any
}

// NewBag returns a bag holding a copy of values.
func NewBag(values map[string]any) *Bag {
	b := &Bag{values: map[string]any{}}
	maps.Copy(b.values, values)
	return b
}

// Load reads the "parameters" mapping of the document at path. found is
// false, and the bag nil, when the file does not exist.
func Load(fs billy.Filesystem, path string) (bag *Bag, found bool, err error) {
	doc, found, err := yamldoc.Read(fs, path)
	if err != nil || !found {
		return nil, found, err
	}
	values, err := doc.ParametersMap()
	if err != nil {
		return nil, true, err
	}
	return NewBag(values), true, nil
}

// Get returns the value of key, nil when absent.
func (b *Bag) Get(key string) any {
	return b.values[key]
}

// IsNull reports whether key is absent or null.
func (b *Bag) IsNull(key string) bool {
	return b.values[key] == nil
}

// SetDefault stores value under key when key is absent or null.
func (b *Bag) SetDefault(key string, value any) bool {
	if !b.IsNull(key) {
		return false
	}
	b.values[key] = value
	return true
}

// Values returns a copy of the bag contents.
func (b *Bag) Values() map[string]any {
	return maps.Clone(b.values)
}
