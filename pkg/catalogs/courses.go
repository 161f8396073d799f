package catalogs

import (
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/courseatlas/courseatlas/pkg/errors"
)

// Courses is a concurrent safe map of courses keyed by course code.
type Courses struct {
	mu      sync.RWMutex
	courses map[string]*Course
}

// CoursesOption defines a function that configures a Courses instance.
type CoursesOption func(*Courses)

// WithCoursesCapacity sets the initial capacity of the courses map.
func WithCoursesCapacity(capacity int) CoursesOption {
	return func(c *Courses) {
		c.courses = make(map[string]*Course, capacity)
	}
}

// WithCoursesMap initializes the map with existing courses.
func WithCoursesMap(courses map[string]*Course) CoursesOption {
	return func(c *Courses) {
		if courses != nil {
			c.courses = make(map[string]*Course, len(courses))
			maps.Copy(c.courses, courses)
		}
	}
}

// NewCourses creates a new Courses map with optional configuration.
func NewCourses(opts ...CoursesOption) *Courses {
	c := &Courses{
		courses: make(map[string]*Course),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns a course by code and whether it exists.
func (c *Courses) Get(code string) (*Course, bool) {
	c.mu.RLock()
	course, ok := c.courses[code]
	c.mu.RUnlock()
	return course, ok
}

// Set sets a course by code. Returns an error if course is nil.
func (c *Courses) Set(code string, course *Course) error {
	if course == nil {
		return fmt.Errorf("course cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.courses[code] = course
	return nil
}

// Add adds a course, returning an error if its code already exists.
func (c *Courses) Add(course *Course) error {
	if course == nil {
		return fmt.Errorf("course cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.courses[course.Code]; exists {
		return fmt.Errorf("course with code %s: %w", course.Code, errors.ErrAlreadyExists)
	}

	c.courses[course.Code] = course
	return nil
}

// Delete removes a course by code. Returns an error if the course doesn't exist.
func (c *Courses) Delete(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.courses[code]; !exists {
		return fmt.Errorf("course with code %s not found", code)
	}

	delete(c.courses, code)
	return nil
}

// Exists checks if a course exists without returning it.
func (c *Courses) Exists(code string) bool {
	c.mu.RLock()
	_, ok := c.courses[code]
	c.mu.RUnlock()
	return ok
}

// Len returns the number of courses.
func (c *Courses) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.courses)
}

// List returns all courses sorted by course code. The sort keeps every
// downstream pass and the persisted form deterministic run-to-run.
func (c *Courses) List() []*Course {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := make([]*Course, 0, len(c.courses))
	for _, course := range c.courses {
		list = append(list, course)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Code < list[j].Code
	})
	return list
}

// Codes returns all course codes sorted lexically.
func (c *Courses) Codes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	codes := make([]string, 0, len(c.courses))
	for code := range c.courses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Map returns a shallow copy of the underlying map.
func (c *Courses) Map() map[string]*Course {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dup := make(map[string]*Course, len(c.courses))
	maps.Copy(dup, c.courses)
	return dup
}
