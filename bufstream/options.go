package bufstream

import (
	"log/slog"

	"github.com/jmgilman/go/errors"
)

// DefaultBufferSize is the buffer capacity used unless WithBufferSize says
// otherwise.
const DefaultBufferSize = 0x8000

// CharLikePolicy decides what a stream does once a seek reveals that its
// descriptor cannot seek, as with pipes and terminals.
type CharLikePolicy uint8

const (
	// CharLikePassthrough switches the stream to unbuffered transfers
	// straight to and from the descriptor. Seeks only move the logical
	// position from then on.
	CharLikePassthrough CharLikePolicy = iota

	// CharLikeError fails the seek with a CodeNotSeekable error and keeps
	// the stream sequential.
	CharLikeError
)

// Option configures a stream at open time.
type Option func(*config)

type config struct {
	bufferSize int
	mmap       bool
	logger     *slog.Logger
	charLike   CharLikePolicy
}

func defaultConfig() config {
	return config{
		bufferSize: DefaultBufferSize,
		mmap:       true,
		logger:     slog.New(slog.DiscardHandler),
		charLike:   CharLikePassthrough,
	}
}

func (c *config) validate() error {
	if c.bufferSize <= 0 {
		return errors.Newf(errors.CodeInvalidInput, "buffer size must be positive, got %d", c.bufferSize)
	}
	if c.charLike != CharLikePassthrough && c.charLike != CharLikeError {
		return errors.Newf(errors.CodeInvalidInput, "unknown char-like policy %d", c.charLike)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

// WithBufferSize sets the buffer capacity in bytes.
func WithBufferSize(n int) Option {
	return func(c *config) {
		c.bufferSize = n
	}
}

// WithoutMmap keeps read streams on the buffered path even for regular
// files.
func WithoutMmap() Option {
	return func(c *config) {
		c.mmap = false
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithCharLikePolicy(p CharLikePolicy) Option {
	return func(c *config) {
		c.charLike = p
	}
}

func (p CharLikePolicy) String() string {
	switch p {
	case CharLikePassthrough:
		return "passthrough"
	case CharLikeError:
		return "error"
	default:
		return "unknown"
	}
}
