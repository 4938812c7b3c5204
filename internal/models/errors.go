package models

import "errors"

var (
	ErrUnknownCountry  = errors.New("models: unknown country")
	ErrUnknownCategory = errors.New("models: unknown category")
	ErrListingNotFound = errors.New("models: listing not found")
	ErrChannelNotFound = errors.New("models: channel not found")
	ErrBannerNotFound  = errors.New("models: banner not found")

	ErrCaptchaInvalid = errors.New("models: captcha missing, expired or wrong")
	ErrValidation     = errors.New("models: validation failed")
	ErrPhotoTooLarge  = errors.New("models: photo exceeds size limit")
	ErrUnauthorized   = errors.New("models: invalid admin credentials")
	ErrDuplicate      = errors.New("models: duplicate entry")

	// ErrRelayUnavailable marks a degraded Telegram relay. Callers absorb
	// it: approvals complete without a photo handle, reads keep the
	// previously displayed URL.
	ErrRelayUnavailable = errors.New("models: photo relay unavailable")

	// ErrCorruptData marks a persisted file that exists but cannot be
	// decoded. Read paths fall back to the empty catalog; write paths must
	// refuse to overwrite the file.
	ErrCorruptData = errors.New("models: persisted file unreadable")

	ErrCodeNotRequested = errors.New("models: verification code not requested")
	ErrCodeExpired      = errors.New("models: verification code expired")
	ErrCodeMismatch     = errors.New("models: verification code mismatch")
	ErrChatIDUnknown    = errors.New("models: telegram chat id not known for user")
)
