package notify

import (
	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
)

// Options controls which notifications Smart emits
type Options struct {
	// ShowError emits an error notification when the call fails
	ShowError bool
	// ShowSuccess emits SuccessMessage when the call succeeds
	ShowSuccess bool
	// SuccessMessage is shown on success; nothing is shown when empty
	SuccessMessage string
	// ErrorMessage replaces the error's own message in the notification
	ErrorMessage string
}

// DefaultOptions shows errors and stays quiet on success
func DefaultOptions() Options {
	return Options{ShowError: true}
}

// Option customizes Options
type Option func(*Options)

// WithSuccess shows message when the call succeeds
func WithSuccess(message string) Option {
	return func(o *Options) {
		o.ShowSuccess = true
		o.SuccessMessage = message
	}
}

// WithErrorMessage shows message instead of the error's own text
func WithErrorMessage(message string) Option {
	return func(o *Options) {
		o.ErrorMessage = message
	}
}

// Quiet suppresses the error notification
func Quiet() Option {
	return func(o *Options) {
		o.ShowError = false
	}
}

// Smart runs fn once and reports its outcome to sink. The value and the
// error are returned exactly as fn produced them.
func Smart[T any](sink Sink, fn func() (T, error), opts ...Option) (T, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if sink == nil {
		sink = Discard
	}

	result, err := fn()
	if err != nil {
		if o.ShowError {
			sink.Error(errorText(o.ErrorMessage, err))
		}
		return result, err
	}

	if o.ShowSuccess && o.SuccessMessage != "" {
		sink.Success(o.SuccessMessage)
	}
	return result, nil
}

// SmartExec is Smart for calls that return no value
func SmartExec(sink Sink, fn func() error, opts ...Option) error {
	_, err := Smart(sink, func() (struct{}, error) {
		return struct{}{}, fn()
	}, opts...)
	return err
}

func errorText(override string, err error) string {
	if override != "" {
		return override
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return wmserrors.MessageRequestFailed
}
