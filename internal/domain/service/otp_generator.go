package service

// OTPGenerator produces one-time numeric codes for password resets.
// Abstracted as a service so use case tests can pin the generated code.
type OTPGenerator interface {
	// Generate returns a 6-digit numeric code, uniformly random over
	// 100000-999999.
	Generate() (string, error)
}
