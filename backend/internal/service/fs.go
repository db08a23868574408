package service

import "io"

type MediaStorage interface {
	// SaveFile stores data under folder with a generated unique name that
	// keeps the extension of originalFilename. It returns the relative path.
	SaveFile(fileData io.Reader, folder, originalFilename string) (string, error)

	// Read opens a file for reading given its relative path.
	Read(filePath string) (io.ReadCloser, error)

	// DeleteFile removes a single file. Missing files are not an error.
	DeleteFile(filePath string) error

	// Owns reports whether filePath was produced by SaveFile.
	Owns(filePath string) bool
}
