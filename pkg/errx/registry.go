package errx

import (
	"fmt"
	"sync"
)

// Code is a fully qualified error code such as "JOB_NOT_FOUND".
type Code string

type definition struct {
	errType    ErrorType
	httpStatus int
	message    string
}

// Registry holds the error codes of one package.
type Registry struct {
	prefix string

	mu   sync.RWMutex
	defs map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code. Registering the same code twice panics.
func (r *Registry) Register(code string, t ErrorType, httpStatus int, message string) Code {
	full := Code(r.prefix + "_" + code)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[full]; exists {
		panic(fmt.Sprintf("errx: code %s registered twice", full))
	}
	r.defs[full] = definition{errType: t, httpStatus: httpStatus, message: message}
	return full
}

// New instantiates a registered code. Unknown codes become internal errors.
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()

	if !ok {
		return New(TypeInternal, "unregistered error code").WithDetail("code", string(code))
	}
	return &Error{
		Type:       def.errType,
		Code:       string(code),
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// NewWithCause instantiates a registered code wrapping cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.New(code).WithCause(cause)
}
