// Package archive packs a directory into a temporary zip file.
//
// Files are stored relative to the packed directory, which itself does not
// appear in the archive. Content is deflated at the best compression level.
package archive
