package model

import "errors"

var (
	ErrSessionNotFound = errors.New("session does not exist")
	ErrUnknownStep     = errors.New("unknown conversation step")
	ErrContactNotFound = errors.New("crm contact does not exist")
)
