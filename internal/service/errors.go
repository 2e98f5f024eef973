package service

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFileTooBig marks a photo larger than the configured upload limit.
	ErrFileTooBig = errors.New("file too big")
	// ErrInvalidRemoteID marks a remote ID that cannot be recorded.
	ErrInvalidRemoteID = errors.New("invalid remote id")
	// ErrRemoteFatal aborts a run: the remote service reported an error the
	// engine has no recovery for.
	ErrRemoteFatal = errors.New("unrecoverable remote error")

	errNoPath            = errors.New("no file path")
	errExcludedExtension = errors.New("excluded extension")
)
