package services

import "errors"

var ErrNotFound = errors.New("not found")
