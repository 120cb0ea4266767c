package domain

import "errors"

var (
	ErrInvalidBirthData     = errors.New("invalid birth data")
	ErrInvalidCoordinates   = errors.New("invalid coordinates")
	ErrNarrativeUnavailable = errors.New("narrative generation failed")
	ErrMatchUnavailable     = errors.New("match scoring failed")
	ErrSuperseded           = errors.New("request superseded by a newer one")
	ErrSavedChartNotFound   = errors.New("saved chart not found")
	ErrTransitNotReady      = errors.New("transit positions are not cached yet")
)

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

// Коды отказа, которые видит клиент. Детали ошибки наружу не уходят
const (
	FailureInvalidInput         = "invalid_input"
	FailureNotFound             = "not_found"
	FailureSuperseded           = "superseded"
	FailureNarrativeUnavailable = "narrative_unavailable"
	FailureMatchUnavailable     = "match_unavailable"
	FailureTransitNotReady      = "transit_not_ready"
	FailureInternal             = "internal"
)

// FailureCode сводит любую ошибку к одному из кодов Failure*
func FailureCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidBirthData), errors.Is(err, ErrInvalidCoordinates):
		return FailureInvalidInput
	case errors.Is(err, ErrSavedChartNotFound):
		return FailureNotFound
	case errors.Is(err, ErrSuperseded):
		return FailureSuperseded
	case errors.Is(err, ErrNarrativeUnavailable):
		return FailureNarrativeUnavailable
	case errors.Is(err, ErrMatchUnavailable):
		return FailureMatchUnavailable
	case errors.Is(err, ErrTransitNotReady):
		return FailureTransitNotReady
	default:
		return FailureInternal
	}
}
