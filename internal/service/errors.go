package service

import "errors"

var (
	ErrNilModel        = errors.New("language model is not specified")
	ErrEmptyMessage    = errors.New("message content is empty")
	ErrAppNameNotGiven = errors.New("app name is not specified")
)
