package minio

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Nadro-J/filebase-go/errs"
	minioErr "github.com/minio/minio-go/v7"
)

// mapError translates a MinIO SDK error into a *errs.Error.
// S3-protocol errors become backend-variant errors carrying the status,
// reason, and message the server reported; everything else is a transport
// failure.
func (d *Driver) mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	// Context cancellation / deadline
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	// The SDK exposes a typed ErrorResponse for S3-protocol errors
	var resp minioErr.ErrorResponse
	if errors.As(err, &resp) && resp.StatusCode > 0 {
		return errs.Backend(kindOf(resp), msg, resp.StatusCode, d.reasonOf(resp), resp.Message, err)
	}

	// Anything else — treat as a generic connection / I/O failure
	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}

// reasonOf picks the error reason reported to callers. The legacy mode
// repeats the numeric status code, matching older releases.
func (d *Driver) reasonOf(resp minioErr.ErrorResponse) string {
	if d.legacyStatusReason {
		return strconv.Itoa(resp.StatusCode)
	}
	return resp.Code
}

// kindOf categorises an S3-protocol error by status code and error code.
func kindOf(resp minioErr.ErrorResponse) errs.ErrKind {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return errs.ErrKindNotFound
	case http.StatusForbidden, http.StatusUnauthorized:
		return errs.ErrKindPermissionDenied
	case http.StatusBadRequest:
		return errs.ErrKindInvalidInput
	}

	// S3 error codes for cases that may arrive with other statuses
	switch resp.Code {
	case "NoSuchBucket", "NoSuchKey", "NoSuchUpload":
		return errs.ErrKindNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return errs.ErrKindPermissionDenied
	case "InvalidBucketName", "InvalidObjectName", "KeyTooLongError", "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
		return errs.ErrKindInvalidInput
	case "RequestTimeout", "SlowDown":
		return errs.ErrKindTimeout
	}

	return errs.ErrKindRequestFailed
}
