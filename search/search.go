package search

import (
	"path/filepath"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// trawl recursively walks uri via TileDB's VFS layer (local filesystem or an
// object store such as S3), collecting every file whose basename matches
// pattern. The basename is matched against the pattern, e.g.
// ("*.h5", "VNP14IMG.A2021045.1842.002.h5").
func trawl(vfs *tiledb.VFS, pattern string, uri string, items []string) []string {
	dirs, files, err := vfs.List(uri)
	if err != nil {
		panic(err)
	}

	for _, file := range files {
		match, err := filepath.Match(pattern, filepath.Base(file))
		if err != nil {
			panic(err)
		}

		if match {
			items = append(items, file)
		}
	}

	for _, dir := range dirs {
		items = trawl(vfs, pattern, dir, items)
	}

	return items
}

// FindGranules recursively searches uri for files matching pattern (e.g.
// "*.h5" or "VNP14*.nc"), using the TileDB Go bindings so the same call
// works unmodified against a local filesystem or an object store. configURI
// points at a TileDB config file when the object store needs credentials;
// pass "" for a plain local search.
func FindGranules(uri, pattern, configURI string) []string {
	var (
		config *tiledb.Config
		err    error
	)

	if configURI == "" {
		config, err = tiledb.NewConfig()
		if err != nil {
			panic(err)
		}
	} else {
		config, err = tiledb.LoadConfig(configURI)
		if err != nil {
			panic(err)
		}
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		panic(err)
	}
	defer ctx.Free()

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		panic(err)
	}
	defer vfs.Free()

	items := make([]string, 0)
	return trawl(vfs, pattern, uri, items)
}
