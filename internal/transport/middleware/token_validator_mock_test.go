package middleware

import (
	"sync"

	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

var _ tokenValidator = &tokenValidatorMock{}

type tokenValidatorMock struct {
	ValidateFunc func(token string) (ctxutil.Identity, error)

	calls struct {
		Validate []struct {
			Token string
		}
	}
	lockValidate sync.RWMutex
}

func (mock *tokenValidatorMock) Validate(token string) (ctxutil.Identity, error) {
	if mock.ValidateFunc == nil {
		panic("tokenValidatorMock.ValidateFunc: method is nil but tokenValidator.Validate was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, callInfo)
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(token)
}

func (mock *tokenValidatorMock) ValidateCalls() []struct {
	Token string
} {
	mock.lockValidate.RLock()
	calls := mock.calls.Validate
	mock.lockValidate.RUnlock()
	return calls
}
