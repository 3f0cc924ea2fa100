package assets

import "errors"

// AssetResolver tries a custom directory first and falls back to the
// embedded styles when a style is missing there.
type AssetResolver struct {
	custom   StyleLoader // nil without a custom base path
	embedded *EmbeddedLoader
}

// NewAssetResolver creates a resolver. An empty customBasePath uses only the
// embedded styles.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		loader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = loader
	}
	return r, nil
}

// LoadStyle implements StyleLoader. Only "not found" errors from the custom
// loader fall back; validation and I/O errors are returned as is.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	// If no custom loader, use embedded directly
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	// Try custom loader first
	css, err := r.custom.LoadStyle(name)
	if err == nil {
		return css, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}

	// Fall back to embedded
	return r.embedded.LoadStyle(name)
}

// Names returns the built-in style names.
func (r *AssetResolver) Names() []string {
	return r.embedded.Names()
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ StyleLoader = (*AssetResolver)(nil)
