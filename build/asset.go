package build

// Asset is one output produced by a build pass.
type Asset interface {
	// Source returns the asset content. Callers must not modify it.
	Source() []byte

	// Size returns the content length in bytes.
	Size() int

	// ExistsAt returns the path of the asset in the output filesystem when it
	// has already been written there, or an empty string.
	ExistsAt() string
}

// RawSource is an in-memory asset that has not been written anywhere yet.
type RawSource []byte

// Source implements Asset.
func (r RawSource) Source() []byte { return r }

// Size implements Asset.
func (r RawSource) Size() int { return len(r) }

// ExistsAt implements Asset.
func (RawSource) ExistsAt() string { return "" }

// FileSource is an asset read from an output filesystem.
type FileSource struct {
	// Path is the location of the file in the output filesystem.
	Path string

	// Data is the file content at load time.
	Data []byte
}

// Source implements Asset.
func (f *FileSource) Source() []byte { return f.Data }

// Size implements Asset.
func (f *FileSource) Size() int { return len(f.Data) }

// ExistsAt implements Asset.
func (f *FileSource) ExistsAt() string { return f.Path }
