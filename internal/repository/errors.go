package repository

import "errors"

var (
	// 該当行なし（RowsAffected==0 も含む）
	ErrNotFound = errors.New("not found")
	// 一意制約違反
	ErrDuplicate = errors.New("duplicate")
)
