package recipe

import "errors"

var (
	ErrNotAuthor = errors.New("only the author can modify the recipe")

	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe was not in favorites")
	ErrAlreadyInCart    = errors.New("recipe is already in shopping cart")
	ErrNotInCart        = errors.New("recipe was not in shopping cart")

	ErrEmptyCart = errors.New("shopping cart is empty")
)

// ValidationError — ошибка проверки полей запроса; обнаруживается до любой
// записи в хранилище.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(msg string) error {
	return &ValidationError{Message: msg}
}
