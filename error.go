package book

import "errors"

var (
	ErrInvalidParam   = errors.New("the param is invalid")
	ErrNotAligned     = errors.New("value is not aligned to the instrument grid")
	ErrSequenceGap    = errors.New("event sequence gap detected")
	ErrSnapshotSchema = errors.New("unsupported snapshot schema version")
)
