package model

import "errors"

var (
	ErrEnvironmentNotFound = errors.New("environment not found")
	ErrEnvironmentInvalid  = errors.New("environment invalid")
	ErrClusterNotFound     = errors.New("cluster not found")
	ErrClusterInvalid      = errors.New("cluster invalid")
	ErrServiceNotFound     = errors.New("service not found")
	ErrServiceInvalid      = errors.New("service invalid")
)
