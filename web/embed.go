// Package web embeds the front end's HTML templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates
var content embed.FS

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(content, dir)
	if err != nil {
		log.Fatalf("failed to create %s sub-filesystem: %v", dir, err)
	}
	return sub
}

// StaticFS returns the stylesheet and other static files.
func StaticFS() fs.FS {
	return mustSub("static")
}

// TemplatesFS returns the page templates. Each page has one file named
// after its lowercased page ID, rendered inside layout.html.
func TemplatesFS() fs.FS {
	return mustSub("templates")
}
