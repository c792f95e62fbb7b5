package site

// Collection is the ordered set of files destined for the generated site.
// Destinations are unique; appending a file whose destination already exists
// removes the prior entry first, so the last registration wins and ends up in
// append position. Not safe for concurrent mutation; the build pipeline is
// sequential and the preview server swaps whole collections under its own lock.
type Collection struct {
	files  []*File
	byDest map[string]int
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{byDest: make(map[string]int)}
}

// Append adds f to the collection, replacing any existing entry with the
// same destination.
func (c *Collection) Append(f *File) {
	if _, ok := c.byDest[f.Dest]; ok {
		c.Remove(f.Dest)
	}
	c.byDest[f.Dest] = len(c.files)
	c.files = append(c.files, f)
}

// Get returns the file registered at dest, if any.
func (c *Collection) Get(dest string) (*File, bool) {
	i, ok := c.byDest[dest]
	if !ok {
		return nil, false
	}
	return c.files[i], true
}

// Remove deletes the entry at dest if present.
func (c *Collection) Remove(dest string) {
	i, ok := c.byDest[dest]
	if !ok {
		return
	}
	c.files = append(c.files[:i], c.files[i+1:]...)
	delete(c.byDest, dest)
	for j := i; j < len(c.files); j++ {
		c.byDest[c.files[j].Dest] = j
	}
}

// Files returns the collection in insertion order. The returned slice is the
// collection's backing store; callers must not mutate it.
func (c *Collection) Files() []*File {
	return c.files
}

// Len returns the number of files in the collection.
func (c *Collection) Len() int {
	return len(c.files)
}
