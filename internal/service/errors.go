package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid = errors.New("参数错误")
	ErrUserNotFound = errors.New("用户不存在")
	ErrNoUsers      = errors.New("no users generated")
	ErrNoTopics     = errors.New("no topics generated")
	ErrNoPosts      = errors.New("no posts generated")
	ErrSeedLocked   = errors.New("另一个生成任务正在运行")
	UnExpectedError = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid: BadRequest,
	ErrUserNotFound: NotFound,
	ErrSeedLocked:   Conflict,
	UnExpectedError: InternalServerError,
}

func errorsIsAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
