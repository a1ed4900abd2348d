// Package catalog holds the static tutorial-track data the platform
// groups courses under. Pure data, no backend involvement.
package catalog

import "strings"

type Track struct {
	Name   string
	Slug   string
	Topics []string
}

var Tracks = []Track{
	{Name: "Go", Slug: "go", Topics: []string{"Basics", "Structs & Interfaces", "Goroutines", "Channels", "Testing", "Web Services"}},
	{Name: "Python", Slug: "python", Topics: []string{"Basics", "Data Structures", "OOP", "Decorators", "Async", "Data Science"}},
	{Name: "JavaScript", Slug: "javascript", Topics: []string{"Basics", "DOM", "Promises", "Async/Await", "Modules", "Node.js"}},
	{Name: "TypeScript", Slug: "typescript", Topics: []string{"Types", "Generics", "Narrowing", "Decorators", "Tooling"}},
	{Name: "Java", Slug: "java", Topics: []string{"Basics", "Collections", "Streams", "Concurrency", "Spring"}},
	{Name: "C", Slug: "c", Topics: []string{"Basics", "Pointers", "Memory", "Files", "Build Tools"}},
	{Name: "C++", Slug: "cpp", Topics: []string{"Basics", "STL", "Templates", "RAII", "Move Semantics"}},
	{Name: "Rust", Slug: "rust", Topics: []string{"Ownership", "Borrowing", "Traits", "Error Handling", "Async"}},
	{Name: "SQL", Slug: "sql", Topics: []string{"Queries", "Joins", "Indexes", "Transactions", "Window Functions"}},
	{Name: "Kotlin", Slug: "kotlin", Topics: []string{"Basics", "Null Safety", "Coroutines", "Android"}},
	{Name: "Swift", Slug: "swift", Topics: []string{"Basics", "Optionals", "Protocols", "SwiftUI"}},
	{Name: "PHP", Slug: "php", Topics: []string{"Basics", "Composer", "Laravel", "Testing"}},
	{Name: "Ruby", Slug: "ruby", Topics: []string{"Basics", "Blocks", "Gems", "Rails"}},
}

// Find returns the track for a slug, case-insensitively.
func Find(slug string) (Track, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, t := range Tracks {
		if t.Slug == slug {
			return t, true
		}
	}
	return Track{}, false
}

// Slugs lists every known track slug in catalog order.
func Slugs() []string {
	out := make([]string, len(Tracks))
	for i, t := range Tracks {
		out[i] = t.Slug
	}
	return out
}
