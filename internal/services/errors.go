package services

import "errors"

var (
	ErrNoAction           = errors.New("no analysis action selected")
	ErrNoDocument         = errors.New("no resume uploaded")
	ErrUnsupportedFormat  = errors.New("unsupported resume format")
	ErrUnreadableDocument = errors.New("resume could not be parsed")
	ErrExtractionEmpty    = errors.New("no text content found in resume")
	ErrServiceFailure     = errors.New("analysis service failure")

	// ErrPermanentFailure marks service errors that a retry cannot fix.
	ErrPermanentFailure = errors.New("permanent failure, do not retry")

	ErrWorkerBusy    = errors.New("analysis queue is full")
	ErrWorkerStopped = errors.New("analysis worker stopped")
)
