package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("invalid request parameters")
	ErrContentNotFound      = errors.New("content not found in our records")
	ErrNoContent            = errors.New("content details do not exist")
	ErrNoCategoryContent    = errors.New("no content found for the provided category")
	ErrGalleryLimitExceeded = errors.New("exceeded maximum number of gallery images (2)")
	ErrGalleryIndexInvalid  = errors.New("invalid gallery image index")
	ErrFileNotSupported     = errors.New("unsupported file type")
	UnExpectedError         = errors.New("unexpected error, please try again later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrContentNotFound:      NotFound,
	ErrNoContent:            NotFound,
	ErrNoCategoryContent:    NotFound,
	ErrGalleryLimitExceeded: BadRequest,
	ErrGalleryIndexInvalid:  BadRequest,
	ErrFileNotSupported:     BadRequest,
	UnExpectedError:         InternalServerError,
}
