// Copyright © 2026 DigitPaint

// Package upload sends archives to the sneakpeek API.
//
// An upload is a single multipart POST to
//
//	{api}/projects/{project}/{branches|tags}/{ref}
//
// carrying the commit SHA, the related project identifier and the zip archive.
// Failures are reported on the console by the Uploader itself.
package upload
