package service

import "errors"

// Failure kinds raised by the services. The HTTP layer maps them to status
// codes; messages are safe to show to API clients.
var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrEmailNotVerified       = errors.New("please verify your email")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrAdminCreateForbidden   = errors.New("not allowed to create admin")
	ErrInvalidOtp             = errors.New("invalid otp")
	ErrOtpExpired             = errors.New("otp expired")
	ErrAlreadyVerified        = errors.New("user already verified")
	ErrNothingToUpdate        = errors.New("please provide name or password")
	ErrInvalidCurrentPassword = errors.New("invalid current password")
	ErrInvalidRating          = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed        = errors.New("you have already reviewed this product")
	ErrProductNotPurchased    = errors.New("you have not purchased this product")
	ErrNoItemsAvailable       = errors.New("these products are not available right now")
	ErrInvalidSignature       = errors.New("webhook signature verification failed")
	ErrForbidden              = errors.New("access denied")
)
