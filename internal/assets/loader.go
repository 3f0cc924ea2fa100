package assets

// DefaultStyle is the style used when none is configured.
const DefaultStyle = "default"

// StyleLoader loads CSS stylesheets by name.
type StyleLoader interface {
	// LoadStyle returns the stylesheet for name (without .css extension).
	// Returns ErrStyleNotFound if it does not exist and ErrInvalidAssetName
	// if the name is unsafe.
	LoadStyle(name string) (string, error)
}
