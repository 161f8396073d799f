// Package catalogs provides the canonical course catalog data model for
// courseatlas. A catalog is an immutable snapshot per pipeline run: previous
// state is loaded, transformed wholesale in memory, and rewritten atomically,
// never patched in place.
package catalogs

// Source identifies the organizational origin of a catalog.
type Source struct {
	District string `json:"district" yaml:"district"`
	URL      string `json:"url" yaml:"url"`
}

// Catalog holds the deduplicated set of courses for one district, keyed by
// course code.
type Catalog struct {
	source  Source
	courses *Courses
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithSource sets the catalog's source identity.
func WithSource(district, url string) Option {
	return func(c *Catalog) {
		c.source = Source{District: district, URL: url}
	}
}

// WithCourses seeds the catalog with an existing collection.
func WithCourses(courses *Courses) Option {
	return func(c *Catalog) {
		if courses != nil {
			c.courses = courses
		}
	}
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	cat := &Catalog{
		courses: NewCourses(),
	}
	for _, opt := range opts {
		opt(cat)
	}
	return cat
}

// Source returns the catalog's source identity.
func (c *Catalog) Source() Source {
	return c.source
}

// SetSource replaces the catalog's source identity.
func (c *Catalog) SetSource(source Source) {
	c.source = source
}

// Courses returns the course collection.
func (c *Catalog) Courses() *Courses {
	return c.courses
}

// Copy returns a deep copy of the catalog.
func (c *Catalog) Copy() *Catalog {
	dup := New(WithSource(c.source.District, c.source.URL))
	for _, course := range c.courses.List() {
		_ = dup.courses.Set(course.Code, course.Copy())
	}
	return dup
}
