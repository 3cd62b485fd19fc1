package repository

import "errors"

// Общие ошибки слоя хранения
var (
	// ErrNotFound — запрошенная запись не найдена
	ErrNotFound = errors.New("repository: запись не найдена")
	// ErrForbidden — операция запрещена политикой доступа
	ErrForbidden = errors.New("repository: операция запрещена")
	// ErrAlreadyShared — повторный репост того же поста тем же пользователем
	ErrAlreadyShared = errors.New("repository: пост уже репостнут")
	// ErrSelfDeletion — администратор пытается удалить сам себя
	ErrSelfDeletion = errors.New("repository: нельзя удалить самого себя")
	// ErrInvalidCredentials — неверная пара логин/пароль (без уточнения, что именно)
	ErrInvalidCredentials = errors.New("repository: неверное имя пользователя или пароль")
	// ErrDuplicateUsername, ErrDuplicateEmail — конфликт при регистрации
	ErrDuplicateUsername = errors.New("repository: имя пользователя уже занято")
	ErrDuplicateEmail    = errors.New("repository: email уже зарегистрирован")
)

// ValidationError — ошибка пользовательского ввода, сообщение показывается в форме
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation — проверка, что ошибка исправима повторной отправкой формы
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
