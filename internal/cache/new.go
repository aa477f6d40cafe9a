package cache

type implStore struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created on first Save.
func New(dir string) Store {
	return &implStore{dir: dir}
}
