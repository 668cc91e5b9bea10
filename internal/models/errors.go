package models

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrFileRequired        = errors.New("file is required")
	ErrTitleRequired       = errors.New("title is required")
	ErrUnsupportedFileType = errors.New("invalid file type: only pdf, doc and docx are allowed")
)
