package controllers

import "errors"

var (
	ErrNoPermission = errors.New("you do not have permission for this action")
	// ErrDeleteBlocked marks a delete refused because other records still
	// reference the target. Distinct from a generic failure on purpose.
	ErrDeleteBlocked = errors.New("record is referenced by existing orders and cannot be deleted")
)
