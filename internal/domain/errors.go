package domain

import "errors"

var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrHistoryNotLoaded = errors.New("history not loaded")
	ErrRecordNotFound   = errors.New("meeting record not found")
	ErrCorruptHistory   = errors.New("corrupt meeting history")

	ErrClipboardUnavailable = errors.New("clipboard not available")
)
