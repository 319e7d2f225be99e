package storage

import "errors"

var ErrDocumentNotFound = errors.New("document not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item with this ID already exists")
var ErrItemNotFound = errors.New("item not found in storage")

func isNotFound(err error) bool {
	return errors.Is(err, ErrDocumentNotFound)
}
