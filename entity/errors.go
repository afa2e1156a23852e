package entity

import "errors"

var (
	ErrPendingTicketExists = errors.New("a pending ticket already exists")
	ErrTicketNotFound      = errors.New("ticket not found")
)
