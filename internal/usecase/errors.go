package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//404 無い・他人のもの
	ErrNotFound = errors.New("not found")
	//競合
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)

// handlerでそのままステータスとメッセージにする
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// errors.Is(err, ErrNotFound) などで分類を判定できるようにする
func (e *HTTPError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status >= http.StatusInternalServerError:
		return ErrInternal
	case e.Status >= http.StatusBadRequest:
		return ErrValidation
	}
	return nil
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// usecaseが使うログ（gommonの*log.Loggerが満たす）
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// 詳細はサーバーログにだけ出して、クライアントには汎用メッセージを返す
func internalError(log Logger, op string, err error) error {
	log.Errorf("%s: %v", op, err)
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}
