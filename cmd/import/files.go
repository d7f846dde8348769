package main

import (
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// collectTextFiles expands directories to the .txt files below them. URLs
// are kept as given.
func collectTextFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		if isURL(p) {
			files = append(files, p)
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(name), ".txt") {
				files = append(files, name)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func isURL(p string) bool {
	u, err := url.Parse(p)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// baseName returns the last path element without extension, for URLs too.
func baseName(p string) string {
	if isURL(p) {
		u, _ := url.Parse(p)
		p = path.Base(u.Path)
		if p == "/" || p == "." {
			return u.Hostname()
		}
	} else {
		p = filepath.Base(p)
	}
	return strings.TrimSuffix(p, filepath.Ext(p))
}

// slugFromPath turns "Moby Dick.txt" into "moby-dick".
func slugFromPath(p string) string {
	base := baseName(p)
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(base) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func titleFromPath(p string) string {
	base := baseName(p)
	return strings.Join(strings.FieldsFunc(base, func(r rune) bool { return r == '_' || r == '-' }), " ")
}
