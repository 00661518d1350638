package kv

import (
	"path"
	"strings"
)

func joinPath(parts ...string) string {
	r := path.Join(parts...)
	if len(parts) > 0 && strings.HasSuffix(parts[len(parts)-1], "/") {
		r += "/"
	}
	return r
}

// prefixKey scopes key under rootPath. An empty key addresses the whole root,
// so the trailing "/" keeps sibling roots like "dir2" out of a "dir" prefix.
func prefixKey(rootPath, key string) string {
	if rootPath == "" {
		return key
	}
	if key == "" {
		return rootPath + "/"
	}
	return joinPath(rootPath, key)
}
