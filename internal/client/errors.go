package client

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong number of arguments")
	ErrInvalidArgs    = errors.New("invalid argument")
)
