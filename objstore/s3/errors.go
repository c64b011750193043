package s3

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Nadro-J/filebase-go/errs"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
)

// mapError translates an AWS SDK error into a *errs.Error.
// It mirrors the mapError in the minio driver: S3-protocol errors become
// backend-variant errors, everything else a transport failure.
func (d *Driver) mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	// Context cancellation / deadline
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	// Status code lives on the transport-layer response error,
	// the S3 error code on the smithy API error.
	var status int
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status = respErr.HTTPStatusCode()
	}

	var code, message string
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.ErrorCode()
		message = apiErr.ErrorMessage()
	}

	if status > 0 {
		return errs.Backend(kindOf(status, code), msg, status, d.reasonOf(status, code), message, err)
	}

	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}

// reasonOf picks the error reason reported to callers. The legacy mode
// repeats the numeric status code, matching older releases.
func (d *Driver) reasonOf(status int, code string) string {
	if d.legacyStatusReason {
		return strconv.Itoa(status)
	}
	return code
}

// kindOf categorises an S3-protocol error by status code and error code.
func kindOf(status int, code string) errs.ErrKind {
	switch status {
	case http.StatusNotFound:
		return errs.ErrKindNotFound
	case http.StatusForbidden, http.StatusUnauthorized:
		return errs.ErrKindPermissionDenied
	case http.StatusBadRequest:
		return errs.ErrKindInvalidInput
	}

	switch code {
	case "NoSuchBucket", "NoSuchKey", "NoSuchUpload", "NotFound":
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
