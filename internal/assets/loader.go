package assets

// AssetLoader defines the contract for loading HTML templates.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type AssetLoader interface {
	// LoadTemplate loads a template by its slash-separated name, extension
	// included. Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name is unsafe.
	LoadTemplate(name string) (string, error)
}
