// Package engine holds the recipe browser core: the pure result pipeline
// (filter, sort, paginate), the category index, output rendering, and the
// Browser session that gates pipeline runs behind the search debounce and the
// page-change throttle.
package engine
