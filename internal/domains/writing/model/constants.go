package model

const (
	// Tag limits
	MaxTags      = 5
	MaxTagLength = 20

	// Content limits
	MaxTitleLength   = 200
	MaxContentLength = 100000

	// Fallback when a draft has content but no title
	DefaultTitle = "Untitled"

	// Listing defaults
	DefaultPageSize = 20
	MaxPageSize     = 100
)
