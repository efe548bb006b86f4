package service

import "github.com/pkg/errors"

var (
	errSystem         = errors.New("system error")
	errCursorNotReady = errors.New("ingestion cursor isn't ready")
)

var ErrorCode = map[error]int{
	errSystem:         1000,
	errCursorNotReady: 1001,
}
