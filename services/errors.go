// ABOUTME: Error taxonomy for the BFF route layer and the upstream client
// ABOUTME: Maps failures to a small stable vocabulary of client-facing statuses and messages

package services

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies a failure surfaced to the browser
type Kind string

const (
	KindMissingInput        Kind = "MissingInput"
	KindConfiguration       Kind = "ConfigurationError"
	KindInvalidCredentials  Kind = "InvalidCredentials"
	KindUnauthorized        Kind = "Unauthorized"
	KindUpstreamUnavailable Kind = "UpstreamUnavailable"
	KindRateLimited         Kind = "RateLimited"
)

// Client-facing messages
const (
	MsgMissingCredentials = "Usuário e senha são obrigatórios"
	MsgConfiguration      = "Erro de configuração no servidor."
	MsgInvalidCredentials = "Credenciais inválidas"
	MsgAuthUnavailable    = "Erro ao comunicar com o serviço de autenticação."
	MsgNoToken            = "Não autorizado: Nenhum token encontrado"
	MsgBackendUnavailable = "Erro ao comunicar com o serviço de backend."
	MsgRateLimited        = "Muitas tentativas de login. Tente novamente mais tarde."
	MsgLoginSuccess       = "Login bem-sucedido"
	MsgLogoutSuccess      = "Logout realizado com sucesso"
)

// ErrNotConfigured is returned by every upstream operation when no base URL is set
var ErrNotConfigured = errors.New("upstream base URL not configured")

// Error is a normalized failure: the status and message the browser sees, plus
// the underlying cause for logs.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UpstreamError reports a failed call to the upstream API.
// StatusCode is 0 when no HTTP response was received.
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("upstream %s returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// UpstreamStatus extracts the upstream HTTP status from err, or 0
func UpstreamStatus(err error) int {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.StatusCode
	}
	return 0
}

func NewMissingCredentials(cause error) *Error {
	return &Error{Kind: KindMissingInput, Status: http.StatusBadRequest, Message: MsgMissingCredentials, Err: cause}
}

func NewConfigurationError() *Error {
	return &Error{Kind: KindConfiguration, Status: http.StatusInternalServerError, Message: MsgConfiguration, Err: ErrNotConfigured}
}

func NewNoTokenError() *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: MsgNoToken}
}

func NewRateLimited() *Error {
	return &Error{Kind: KindRateLimited, Status: http.StatusTooManyRequests, Message: MsgRateLimited}
}

// LoginFailure collapses an upstream credential-exchange failure into one of
// two messages. Upstream 401 is InvalidCredentials; anything else keeps the
// upstream status (500 when there was none) with a generic message.
func LoginFailure(err error) *Error {
	if errors.Is(err, ErrNotConfigured) {
		return NewConfigurationError()
	}

	status := UpstreamStatus(err)
	if status == http.StatusUnauthorized {
		return &Error{Kind: KindInvalidCredentials, Status: http.StatusUnauthorized, Message: MsgInvalidCredentials, Err: err}
	}
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &Error{Kind: KindUpstreamUnavailable, Status: status, Message: MsgAuthUnavailable, Err: err}
}

// BackendFailure maps a profile or listing failure to a gateway error
func BackendFailure(err error) *Error {
	if errors.Is(err, ErrNotConfigured) {
		return NewConfigurationError()
	}
	return &Error{Kind: KindUpstreamUnavailable, Status: http.StatusBadGateway, Message: MsgBackendUnavailable, Err: err}
}
